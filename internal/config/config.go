package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds process-level settings. Scenario data lives in YAML under
// ConfigDir.
type AppConfig struct {
	ConfigDir string
	Game      string
	LogDir    string

	SimTrials  int
	SimSeed    uint64
	SimWorkers int
}

// Load reads .env files (binary directory first, then the working directory)
// and the environment. Variables already set in the environment win.
func Load() (*AppConfig, error) {
	if exePath, err := os.Executable(); err == nil {
		envPath := filepath.Join(filepath.Dir(exePath), ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables")
	}

	cfg := &AppConfig{
		ConfigDir:  getEnv("GACHA_CONFIG_DIR", "configs"),
		Game:       getEnv("GACHA_GAME", "default"),
		LogDir:     getEnv("GACHA_LOG_DIR", ""),
		SimTrials:  getEnvInt("GACHA_SIM_TRIALS", 20000),
		SimSeed:    getEnvUint("GACHA_SIM_SEED", 1),
		SimWorkers: getEnvInt("GACHA_SIM_WORKERS", runtime.GOMAXPROCS(0)),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer setting")
	}
	return fallback
}

func getEnvUint(key string, fallback uint64) uint64 {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseUint(value, 10, 64); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring invalid unsigned setting")
	}
	return fallback
}

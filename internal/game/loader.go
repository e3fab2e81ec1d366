package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Paths helper for default/game/scenario files.
type Paths struct {
	BaseDir string // e.g. ./configs
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "games", "default.yaml")
}
func (p Paths) GamePath(game string) string {
	return filepath.Join(p.BaseDir, "games", game+".yaml")
}
func (p Paths) ScenarioDir(game string) string {
	return filepath.Join(p.BaseDir, "games", game, "scenarios")
}
func (p Paths) ScenarioPath(game, scenario string) string {
	return filepath.Join(p.ScenarioDir(game), scenario+".yaml")
}

// Files lists every layer file of a scenario, most general first.
func (p Paths) Files(game, scenario string) []string {
	files := []string{p.DefaultPath(), p.GamePath(game)}
	if scenario != "" {
		files = append(files, p.ScenarioPath(game, scenario))
	}
	return files
}

// Loader reads YAML layers and merges default → game → scenario.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: "game" or "game/scenario"
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → game → scenario (scenario optional).
// It returns the merged RawConfig without validation.
func (l *Loader) LoadMerged(game, scenario string) (RawConfig, error) {
	key := game
	if scenario != "" {
		key = game + "/" + scenario
	}
	l.mu.RLock()
	cfg, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return cfg, nil
	}

	defCfg, err := readYAML(l.paths.DefaultPath(), false)
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	gameCfg, err := readYAML(l.paths.GamePath(game), false)
	if err != nil {
		return RawConfig{}, fmt.Errorf("read game %q: %w", game, err)
	}
	merged := mergeRaw(defCfg, gameCfg)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache[game] = merged

	if scenario != "" {
		scCfg, err := readYAML(l.paths.ScenarioPath(game, scenario), true)
		if err != nil {
			return RawConfig{}, fmt.Errorf("read scenario %q: %w", scenario, err)
		}
		merged = mergeRaw(merged, scCfg)
		l.cache[key] = merged
	}

	log.Debug().Str("game", game).Str("scenario", scenario).Str("version", merged.Version).Msg("Loaded scenario config")
	return merged, nil
}

// Scenarios lists the scenario names available for a game.
func (l *Loader) Scenarios(game string) ([]string, error) {
	entries, err := os.ReadDir(l.paths.ScenarioDir(game))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. A missing file is an empty
// layer unless required.
func readYAML(path string, required bool) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// mergeRaw overlays b on a: set scalars and pointers in b win, and a
// non-empty banner or pack list in b replaces a's.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.Pulls != nil {
		out.Pulls = b.Pulls
	}
	if len(b.Banners) > 0 {
		out.Banners = append([]BannerConfig(nil), b.Banners...)
	}

	// draw
	if b.Draw.PBase != nil {
		out.Draw.PBase = b.Draw.PBase
	}
	if b.Draw.Pity != nil {
		out.Draw.Pity = b.Draw.Pity
	}
	switch {
	case b.Draw.Soft == nil:
	case out.Draw.Soft == nil:
		softCopy := *b.Draw.Soft
		out.Draw.Soft = &softCopy
	default:
		soft := *out.Draw.Soft
		if b.Draw.Soft.Mode != "" {
			soft.Mode = b.Draw.Soft.Mode
		}
		if b.Draw.Soft.StartAt != nil {
			soft.StartAt = b.Draw.Soft.StartAt
		}
		if b.Draw.Soft.StartPct != nil {
			soft.StartPct = b.Draw.Soft.StartPct
		}
		if b.Draw.Soft.Target != nil {
			soft.Target = b.Draw.Soft.Target
		}
		if b.Draw.Soft.Increment != nil {
			soft.Increment = b.Draw.Soft.Increment
		}
		if b.Draw.Soft.Easing != "" {
			soft.Easing = b.Draw.Soft.Easing
		}
		out.Draw.Soft = &soft
	}

	// tokens
	switch {
	case b.Tokens == nil:
	case out.Tokens == nil:
		c := *b.Tokens
		out.Tokens = &c
	default:
		c := *out.Tokens
		if b.Tokens.Name != "" {
			c.Name = b.Tokens.Name
		}
		if b.Tokens.PerDraw != nil {
			c.PerDraw = b.Tokens.PerDraw
		}
		if b.Tokens.PerTenDraw != nil {
			c.PerTenDraw = b.Tokens.PerTenDraw
		}
		if b.Tokens.Balance != nil {
			c.Balance = b.Tokens.Balance
		}
		out.Tokens = &c
	}

	// store
	switch {
	case b.Store == nil:
	case out.Store == nil:
		c := *b.Store
		out.Store = &c
	default:
		c := *out.Store
		if b.Store.Currency != "" {
			c.Currency = b.Store.Currency
		}
		if b.Store.TaxRate != 0 {
			c.TaxRate = b.Store.TaxRate
		}
		if len(b.Store.FirstTime) > 0 {
			c.FirstTime = append([]string(nil), b.Store.FirstTime...)
		}
		if len(b.Store.Packs) > 0 {
			c.Packs = append([]PackConfig(nil), b.Store.Packs...)
		}
		out.Store = &c
	}

	return out
}

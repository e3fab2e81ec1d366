package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xtding233/gacha-odds/internal/config"
	"github.com/xtding233/gacha-odds/internal/game"
	"github.com/xtding233/gacha-odds/internal/logging"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	verbose   bool
	configDir string
	game      string

	cfg    *config.AppConfig
	loader *game.Loader
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "gacha-odds",
		Short: "Exact odds of completing every target across gacha banners",
		Long: `gacha-odds computes the probability of collecting a number of limited units on each
of several banners with one shared pull budget, using the pity rate table and
per-banner focus guarantees. Scenarios are YAML files layered default -> game -> scenario.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(a.verbose, "")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("config-dir") {
				cfg.ConfigDir = a.configDir
			}
			if cmd.Flags().Changed("game") {
				cfg.Game = a.game
			}
			a.cfg = cfg
			a.loader = game.NewLoader(cfg.ConfigDir)

			if cfg.LogDir != "" {
				logging.Init(a.verbose, cfg.LogDir)
			}
			log.Debug().
				Str("version", Version).
				Str("commit", Commit).
				Str("buildDate", BuildDate).
				Str("configDir", cfg.ConfigDir).
				Str("game", cfg.Game).
				Msg("gacha-odds starting")
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&a.configDir, "config-dir", "configs", "directory holding games/ (overrides GACHA_CONFIG_DIR)")
	rootCmd.PersistentFlags().StringVarP(&a.game, "game", "g", "default", "game whose scenarios to use (overrides GACHA_GAME)")

	rootCmd.AddCommand(
		newCalcCmd(a),
		newSimulateCmd(a),
		newPlanCmd(a),
		newWatchCmd(a),
		newScenariosCmd(a),
		newDrawCmd(),
	)
	return rootCmd
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("command failed")
	}
	return err
}

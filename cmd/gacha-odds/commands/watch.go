package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xtding233/gacha-odds/internal/game"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		in       inputFlags
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch <scenario>",
		Short: "Recalculate a scenario whenever its YAML layers change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			recalc := func() {
				scs, err := a.scenarios(cmd, []string{name}, &in)
				if err == nil {
					var results []calcResult
					if results, err = calculateAll(scs); err == nil {
						err = writeCalcTable(cmd.OutOrStdout(), results)
					}
				}
				if err != nil {
					log.Error().Err(err).Str("scenario", name).Msg("recalculation failed")
				}
			}

			recalc()
			files := a.loader.Paths().Files(a.cfg.Game, name)
			w := game.NewFileWatcher(files, interval, func(path string) {
				log.Info().Str("file", path).Msg("scenario changed, reloading")
				a.loader.Invalidate()
				fmt.Fprintln(cmd.OutOrStdout())
				recalc()
			})
			log.Info().Strs("files", files).Dur("interval", interval).Msg("watching")

			err := w.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&in.pulls, "pulls", "n", 0, "shared pull budget (overrides the scenario)")
	cmd.Flags().IntVar(&in.tokens, "tokens", 0, "premium currency balance (overrides the scenario)")
	cmd.Flags().IntVar(&in.spendCents, "spend-cents", 0, "money to spend in the store, in cents")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval")
	return cmd
}

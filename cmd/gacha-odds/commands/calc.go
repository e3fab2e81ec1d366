package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xtding233/gacha-odds/internal/game"
	"github.com/xtding233/gacha-odds/internal/odds"
)

func newCalcCmd(a *app) *cobra.Command {
	var (
		in     inputFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "calc [scenario...]",
		Short: "Exact probability of reaching every banner's target",
		Example: `  gacha-odds calc two-banners
  gacha-odds calc --all --json
  gacha-odds calc -n 170 -b target=1,subrate=0.35,bonus=24 -b target=1,subrate=0.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scs, err := a.scenarios(cmd, args, &in)
			if err != nil {
				return err
			}
			results, err := calculateAll(scs)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			return writeCalcTable(cmd.OutOrStdout(), results)
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

// calculateAll analyzes independent scenarios concurrently, keeping input order.
func calculateAll(scs []game.Scenario) ([]calcResult, error) {
	results := make([]calcResult, len(scs))
	var g errgroup.Group
	for i, sc := range scs {
		g.Go(func() error {
			r, err := odds.Analyze(sc.Banners, sc.Pulls)
			if err != nil {
				return err
			}
			log.Debug().
				Str("scenario", sc.Name).
				Int("pulls", r.Pulls).
				Int("convSize", r.ConvSize).
				Float64("probability", r.Probability).
				Msg("calculated")
			results[i] = newCalcResult(sc, r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

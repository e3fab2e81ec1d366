package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xtding233/gacha-odds/internal/gacha"
	"github.com/xtding233/gacha-odds/internal/odds"
)

type simBanner struct {
	Name   string      `json:"name"`
	Target int         `json:"target"`
	Draws  gacha.Stats `json:"draws_to_target"`
}

type simResult struct {
	Scenario string         `json:"scenario"`
	Pulls    int            `json:"pulls"`
	Exact    float64        `json:"exact"`
	Estimate gacha.Estimate `json:"estimate"`
	Banners  []simBanner    `json:"banners"`
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		in      inputFlags
		asJSON  bool
		trials  int
		seed    uint64
		workers int
	)
	cmd := &cobra.Command{
		Use:   "simulate [scenario...]",
		Short: "Cross-check the exact result with a Monte Carlo simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("trials") {
				trials = a.cfg.SimTrials
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.SimSeed
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.SimWorkers
			}
			if trials <= 0 {
				return fmt.Errorf("--trials must be > 0, got %d", trials)
			}

			scs, err := a.scenarios(cmd, args, &in)
			if err != nil {
				return err
			}

			var results []simResult
			for _, sc := range scs {
				exact, err := odds.Calculate(sc.Banners, sc.Pulls)
				if err != nil {
					return fmt.Errorf("scenario %q: %w", sc.Name, err)
				}
				est, err := gacha.EstimateSuccess(cmd.Context(), sc.Banners, sc.Pulls, gacha.EstimateOptions{
					Trials:  trials,
					Seed:    seed,
					Workers: workers,
					PBase:   sc.PBase,
					Pity:    sc.Pity,
					Soft:    sc.Soft,
				})
				if err != nil {
					return fmt.Errorf("scenario %q: %w", sc.Name, err)
				}

				res := simResult{Scenario: sc.Name, Pulls: sc.Pulls, Exact: exact, Estimate: est}
				for i, b := range sc.Banners {
					p := gacha.SimParams{PBase: sc.PBase, Pity: sc.Pity, Soft: sc.Soft, Banner: b}
					st, err := gacha.RunMonteCarlo(p, gacha.GoalTarget, trials, nil, gacha.NewStreamRNG(seed, uint64(1000+i)))
					if err != nil {
						return fmt.Errorf("scenario %q: %w", sc.Name, err)
					}
					res.Banners = append(res.Banners, simBanner{Name: b.Name, Target: b.Target, Draws: st})
				}
				if !est.Covers(exact, 0.01) {
					log.Warn().
						Str("scenario", sc.Name).
						Float64("exact", exact).
						Float64("low", est.Low).
						Float64("high", est.High).
						Msg("exact result outside the simulated interval")
				}
				results = append(results, res)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tPULLS\tEXACT\tSIMULATED\tINTERVAL (95%)")
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t[%s, %s]\n", r.Scenario, r.Pulls,
					percent(r.Exact), percent(r.Estimate.Probability), percent(r.Estimate.Low), percent(r.Estimate.High))
				for _, b := range r.Banners {
					fmt.Fprintf(tw, "  %s\ttarget %d\tmean %.1f\tp50 %.0f p90 %.0f\tp99 %.0f\n",
						b.Name, b.Target, b.Draws.Mean, b.Draws.P50, b.Draws.P90, b.Draws.P99)
				}
			}
			return tw.Flush()
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().IntVar(&trials, "trials", 20000, "Monte Carlo trials (default GACHA_SIM_TRIALS)")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "simulation seed (default GACHA_SIM_SEED)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (default GACHA_SIM_WORKERS)")
	return cmd
}

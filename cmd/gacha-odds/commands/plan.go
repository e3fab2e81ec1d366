package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xtding233/gacha-odds/internal/game"
	"github.com/xtding233/gacha-odds/internal/odds"
	"github.com/xtding233/gacha-odds/internal/pricing"
)

type planResult struct {
	Scenario     string       `json:"scenario"`
	Confidence   float64      `json:"confidence"`
	Reachable    bool         `json:"reachable"`
	MinPulls     int          `json:"min_pulls"`
	Probability  float64      `json:"probability"`
	OwnedPulls   int          `json:"owned_pulls"`
	TokensNeeded int          `json:"tokens_needed"`
	TokensShort  int          `json:"tokens_short"`
	Purchase     pricing.Plan `json:"purchase"`
}

func newPlanCmd(a *app) *cobra.Command {
	var (
		in         inputFlags
		asJSON     bool
		confidence float64
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "plan [scenario...]",
		Short: "Fewest pulls, and cheapest store purchase, to reach a confidence level",
		RunE: func(cmd *cobra.Command, args []string) error {
			scs, err := a.scenarios(cmd, args, &in)
			if err != nil {
				return err
			}
			var results []planResult
			for _, sc := range scs {
				r, err := planScenario(sc, confidence, limit)
				if err != nil {
					return fmt.Errorf("scenario %q: %w", sc.Name, err)
				}
				results = append(results, r)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tCONFIDENCE\tMIN PULLS\tOWNED\tTOKENS SHORT\tCOST")
			for _, r := range results {
				if !r.Reachable {
					fmt.Fprintf(tw, "%s\t%s\tunreachable within %d (best %s)\t%d\t-\t-\n",
						r.Scenario, percent(r.Confidence), limit, percent(r.Probability), r.OwnedPulls)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%d (%s)\t%d\t%d\t%s\n",
					r.Scenario, percent(r.Confidence), r.MinPulls, percent(r.Probability), r.OwnedPulls, r.TokensShort, cost(r.Purchase))
				for _, p := range r.Purchase.Purchases {
					fmt.Fprintf(tw, "  %dx %s\t\t\t\t%d\t%s\n", p.Qty, p.Name, p.UnitTokens*p.Qty, cents(p.Subtotal, r.Purchase.Currency))
				}
			}
			return tw.Flush()
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().Float64VarP(&confidence, "confidence", "c", 0.9, "probability to reach, in (0,1]")
	cmd.Flags().IntVar(&limit, "limit", 3000, "largest shared budget to consider")
	return cmd
}

// planScenario finds the minimum budget and prices the pulls the scenario
// does not already own.
func planScenario(sc game.Scenario, confidence float64, limit int) (planResult, error) {
	r := planResult{Scenario: sc.Name, Confidence: confidence, OwnedPulls: sc.Pulls}
	n, p, err := odds.MinPulls(sc.Banners, confidence, limit)
	switch {
	case errors.Is(err, odds.ErrUnreachable):
		r.Probability = p
		return r, nil
	case err != nil:
		return r, err
	}
	r.Reachable, r.MinPulls, r.Probability = true, n, p

	// pulls granted directly are free; the rest is paid in tokens
	need := max(n-sc.BasePulls, 0)
	r.TokensNeeded = sc.Token.TokensForDraws(need)
	r.TokensShort = max(r.TokensNeeded-sc.Balance, 0)
	r.Purchase = pricing.MinCostAtLeastTokens(sc.Catalog, r.TokensShort, sc.FirstTime)
	return r, nil
}

func cost(p pricing.Plan) string {
	if len(p.Purchases) == 0 {
		return "-"
	}
	return cents(p.TotalCents, p.Currency)
}

func cents(c int, currency string) string {
	return fmt.Sprintf("%d.%02d %s", c/100, c%100, currency)
}

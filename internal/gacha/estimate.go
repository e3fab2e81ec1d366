package gacha

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/xtding233/gacha-odds/internal/odds"
)

// EstimateOptions tunes EstimateSuccess.
type EstimateOptions struct {
	Trials  int
	Seed    uint64
	Workers int // <= 0 uses GOMAXPROCS

	// rare-outcome mechanics; zero Pity uses DefaultSoftPity
	PBase float64
	Pity  int
	Soft  *SoftPityConfig
}

// Estimate is a Monte Carlo estimate with a 95% confidence interval.
type Estimate struct {
	Trials      int     `json:"trials"`
	Successes   int     `json:"successes"`
	Probability float64 `json:"probability"`
	Low         float64 `json:"low"`
	High        float64 `json:"high"`
}

// Covers reports whether p lies inside the interval widened by slack.
func (e Estimate) Covers(p, slack float64) bool {
	return p >= e.Low-slack && p <= e.High+slack
}

// EstimateSuccess simulates the quantity odds.Calculate computes: every banner
// completes its target within its allowance, and the pulls spent across all
// banners fit in pulls plus every bonus pull. Each banner spends at least
// its one reserved pull.
func EstimateSuccess(ctx context.Context, banners []odds.Banner, pulls int, opts EstimateOptions) (Estimate, error) {
	allowances, err := odds.Allowances(banners, pulls)
	if err != nil {
		return Estimate{}, err
	}
	if opts.Trials <= 0 {
		return Estimate{}, nil
	}

	window := pulls
	params := make([]SimParams, len(banners))
	for i, b := range banners {
		window += b.BonusPulls
		params[i] = DefaultSimParams(b)
		if opts.Pity > 0 {
			params[i].PBase, params[i].Pity, params[i].Soft = opts.PBase, opts.Pity, opts.Soft
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, opts.Trials)

	successes := make([]int, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		share := opts.Trials / workers
		if w < opts.Trials%workers {
			share++
		}
		g.Go(func() error {
			rng := NewStreamRNG(opts.Seed, uint64(w))
			for i := range share {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				ok, err := trialSucceeds(params, allowances, window, rng)
				if err != nil {
					return err
				}
				if ok {
					successes[w]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Estimate{}, err
	}

	est := Estimate{Trials: opts.Trials}
	for _, s := range successes {
		est.Successes += s
	}
	est.Probability = float64(est.Successes) / float64(est.Trials)

	z := distuv.UnitNormal.Quantile(0.975)
	half := z * math.Sqrt(est.Probability*(1-est.Probability)/float64(est.Trials))
	est.Low = max(est.Probability-half, 0)
	est.High = min(est.Probability+half, 1)
	return est, nil
}

func trialSucceeds(params []SimParams, allowances []int, window int, rng RandomSource) (bool, error) {
	used := 0
	for i, p := range params {
		if allowances[i] < 1 {
			return false, nil
		}
		draws, ok, err := drawsToTarget(p, allowances[i], rng)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		used += max(draws, 1)
		if used > window {
			return false, nil
		}
	}
	return true, nil
}

package gacha

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/xtding233/gacha-odds/internal/odds"
)

// TrialGoal selects what the simulation measures per trial.
type TrialGoal string

const (
	// Draws until the first rare outcome of any kind.
	GoalFirstHit TrialGoal = "first_hit"
	// Draws until the banner's target count is collected.
	GoalTarget TrialGoal = "target"
	// Targets collected within a fixed budget of draws.
	GoalFixedBudget TrialGoal = "fixed_budget"
)

// SimParams describes the mechanics for one simulated banner.
type SimParams struct {
	// Base probability far from pity.
	PBase float64
	// Hard pity threshold and optional soft ramp; nil Soft means hard pity only.
	Pity int
	Soft *SoftPityConfig
	// Draws since the last rare outcome when entering the banner.
	Cushion int

	Banner odds.Banner
}

// DefaultSimParams simulates b with the same rates as the exact engine.
func DefaultSimParams(b odds.Banner) SimParams {
	pBase, soft := DefaultSoftPity()
	return SimParams{PBase: pBase, Pity: soft.Pity, Soft: soft, Banner: b}
}

// SimBudget controls the number of draws used in GoalFixedBudget.
type SimBudget struct {
	NumDraws int
}

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// raw samples for callers that export histograms
	Samples []int `json:"-"`
}

// calcStats summarizes integer samples. Variance is the population variance;
// percentiles interpolate linearly between samples.
func calcStats(xs []int) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	sorted := make([]float64, len(xs))
	for i, v := range xs {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	mean, variance := stat.PopMeanVariance(sorted, nil)
	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P90:     stat.Quantile(0.90, stat.LinInterp, sorted, nil),
		P99:     stat.Quantile(0.99, stat.LinInterp, sorted, nil),
		Samples: xs,
	}
}

// newSoft constructs a fresh SoftPitySystem using SimParams.
func newSoft(p SimParams, rng RandomSource) (*SoftPitySystem, error) {
	sp, err := NewSoftPitySystem(p.Pity, p.Soft, rng)
	if err != nil {
		return nil, err
	}
	// cushion becomes the starting count
	c := max(p.Cushion, 0)
	if p.Pity > 0 && c >= p.Pity {
		c = p.Pity - 1
	}
	sp.Count = c
	return sp, nil
}

func newBanner(p SimParams, rng RandomSource) (*BannerSystem, error) {
	sp, err := newSoft(p, rng)
	if err != nil {
		return nil, err
	}
	return NewBannerSystem(sp, p.Banner), nil
}

// drawsToTarget draws until the banner's target count is met or limit draws
// are spent. limit <= 0 means no limit.
func drawsToTarget(p SimParams, limit int, rng RandomSource) (int, bool, error) {
	if p.Banner.Target <= 0 {
		return 0, true, nil
	}
	banner, err := newBanner(p, rng)
	if err != nil {
		return 0, false, err
	}
	for draws := 1; limit <= 0 || draws <= limit; draws++ {
		out, err := banner.Draw(p.PBase)
		if err != nil {
			return 0, false, err
		}
		if out.Copies >= p.Banner.Target {
			return draws, true, nil
		}
	}
	return limit, false, nil
}

// simulateOne returns the primary metric for one trial depending on the goal.
func simulateOne(p SimParams, goal TrialGoal, budget *SimBudget, rng RandomSource) (int, error) {
	switch goal {
	case GoalFirstHit:
		sp, err := newSoft(p, rng)
		if err != nil {
			return 0, err
		}
		for draws := 1; ; draws++ {
			hit, err := sp.Draw(p.PBase)
			if err != nil {
				return 0, err
			}
			if hit {
				return draws, nil
			}
		}

	case GoalTarget:
		draws, _, err := drawsToTarget(p, 0, rng)
		return draws, err

	case GoalFixedBudget:
		if budget == nil || budget.NumDraws <= 0 {
			return 0, nil
		}
		banner, err := newBanner(p, rng)
		if err != nil {
			return 0, err
		}
		for i := 0; i < budget.NumDraws; i++ {
			if _, err := banner.Draw(p.PBase); err != nil {
				return 0, err
			}
		}
		return banner.Copies, nil
	}

	return 0, nil
}

// RunMonteCarlo repeats trials and returns summary stats.
// A nil rng uses DefaultRNG.
func RunMonteCarlo(p SimParams, goal TrialGoal, trials int, budget *SimBudget, rng RandomSource) (Stats, error) {
	if trials <= 0 {
		return Stats{}, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		v, err := simulateOne(p, goal, budget, rng)
		if err != nil {
			return Stats{}, err
		}
		samples[i] = v
	}
	return calcStats(samples), nil
}

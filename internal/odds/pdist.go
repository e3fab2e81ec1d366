package odds

// focus flags for the focus recurrence
const (
	focusAvailable = 0 // unspent, window counting from the last target
	focusSpent     = 1 // guarantee used, plain subrate draws from here on
)

// Generate computes the probability distribution, up to budget pulls, of
// reaching target copies on a banner. Element i is the probability that the
// target count is first reached on pull i+1. Mass beyond the budget is not
// represented, so the result need not sum to 1.
//
// A target of 0 is already satisfied: all mass sits on the banner's reserved
// first pull, which is the identity of the convolution in Calculate.
func Generate(target, budget int, subrate float64, hasFocus bool) ([]float64, error) {
	if err := validateSubrate(subrate); err != nil {
		return nil, err
	}
	if target < 0 || budget < 0 {
		return nil, ErrNegativeCount
	}
	if budget == 0 {
		return []float64{}, nil
	}
	if target == 0 {
		pdist := make([]float64, budget)
		pdist[0] = 1
		return pdist, nil
	}
	if hasFocus {
		return focusDistribution(target, budget, subrate), nil
	}
	return plainDistribution(target, budget, subrate), nil
}

// plainDistribution walks a (count, pity) Markov chain one pull at a time.
func plainDistribution(target, budget int, subrate float64) []float64 {
	pdist := make([]float64, 0, budget)

	// probs[t][p]: chance of holding t copies at pity p after the current pull
	probs := make([][PityLevels]float64, target+1)
	next := make([][PityLevels]float64, target+1)
	probs[0][0] = 1

	for range budget {
		for t := 0; t < target; t++ {
			for p, rate := range sixStarRates {
				mass := probs[t][p]
				if mass == 0 {
					continue
				}
				// rate is 1 at the last level, so nothing climbs past it
				if p+1 < PityLevels {
					next[t][p+1] += mass * (1 - rate)
				}
				next[t][0] += mass * rate * (1 - subrate)
				next[t+1][0] += mass * rate * subrate
			}
		}
		probs, next = next, probs
		clear(next)

		// rows with t == target are never propagated, so (target, 0) only
		// holds mass that completed the target on this pull
		pdist = append(pdist, probs[target][0])
	}
	return pdist
}

// focusDistribution tracks only pity-0 states, indexed by pull, count and
// focus flag, and jumps between them with precomputed timing distributions.
func focusDistribution(target, budget int, subrate float64) []float64 {
	timing := focusTiming(subrate)

	rows := target + 1
	probs := make([][2]float64, (budget+1)*rows)
	at := func(pull, count int) *[2]float64 {
		return &probs[pull*rows+count]
	}
	at(0, 0)[focusAvailable] = 1

	for p := 0; p < budget; p++ {
		for t := 0; t < target; t++ {
			cur := at(p, t)

			if avail := cur[focusAvailable]; avail != 0 {
				for n := 1; n <= focusSpan && p+n <= budget; n++ {
					flag := focusAvailable
					if n > FocusWindow {
						flag = focusSpent
					}
					at(p+n, t+1)[flag] += avail * timing[n]
				}
			}

			if spent := cur[focusSpent]; spent != 0 {
				for n := 1; n < PityLevels && p+n <= budget; n++ {
					x := spent * rareInExactly[n]
					at(p+n, t+1)[focusSpent] += x * subrate
					at(p+n, t)[focusSpent] += x * (1 - subrate)
				}
			}
		}
	}

	pdist := make([]float64, budget)
	for p := 1; p <= budget; p++ {
		done := at(p, target)
		pdist[p-1] = done[focusAvailable] + done[focusSpent]
	}
	return pdist
}

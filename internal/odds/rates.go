package odds

// PityLevels is the number of pity levels in the rate table. A pull made at
// the last level always yields a rare outcome.
const PityLevels = 99

// FocusWindow is the number of pulls after which the first rare outcome on a
// focus banner is guaranteed to be the target.
const FocusWindow = 150

// focusSpan is the furthest pull, counted from the last target, at which the
// focus renewal can land a target.
const focusSpan = FocusWindow + PityLevels - 1

// rare-outcome chance per pity level
var sixStarRates = [PityLevels]float64{
	0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02,
	0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02,
	0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02,
	0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02,
	0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02,
	0.04, 0.06, 0.08, 0.10, 0.12, 0.14, 0.16, 0.18, 0.20, 0.22,
	0.24, 0.26, 0.28, 0.30, 0.32, 0.34, 0.36, 0.38, 0.40, 0.42,
	0.44, 0.46, 0.48, 0.50, 0.52, 0.54, 0.56, 0.58, 0.60, 0.62,
	0.64, 0.66, 0.68, 0.70, 0.72, 0.74, 0.76, 0.78, 0.80, 0.82,
	0.84, 0.86, 0.88, 0.90, 0.92, 0.94, 0.96, 0.98, 1.00,
}

// rareInExactly[n] is the probability that the next rare outcome, of either
// kind, lands on exactly pull n starting from pity 0. Index 0 is unused.
var rareInExactly = rareTiming()

// Rate returns the rare-outcome chance of a pull made at the given pity level.
func Rate(pity int) float64 {
	return sixStarRates[pity]
}

// Rates returns a copy of the rate table.
func Rates() [PityLevels]float64 {
	return sixStarRates
}

func rareTiming() [PityLevels]float64 {
	// reached[i]: chance pity climbs from 0 to level i without a rare outcome
	var reached [PityLevels]float64
	reached[0] = 1
	for i := 1; i < PityLevels; i++ {
		reached[i] = reached[i-1] * (1 - sixStarRates[i-1])
	}

	var timing [PityLevels]float64
	for n := 1; n < PityLevels; n++ {
		timing[n] = reached[n-1] - reached[n]
	}
	return timing
}

// focusTiming returns, for n in [1, focusSpan], the probability that a focus
// banner starting at pity 0 with focus unspent yields its target on exactly
// pull n. Rare outcomes inside the window are the target with chance subrate;
// the first one past the window always is.
func focusTiming(subrate float64) []float64 {
	timing := make([]float64, focusSpan+1)
	// noTarget[i]: chance of sitting at pity 0 on pull i with no target yet
	noTarget := make([]float64, focusSpan+1)
	noTarget[0] = 1

	for i := 0; i <= FocusWindow; i++ {
		if noTarget[i] == 0 {
			continue
		}
		for j := 1; j < PityLevels; j++ {
			x := noTarget[i] * rareInExactly[j]
			if i+j > FocusWindow {
				timing[i+j] += x
				continue
			}
			timing[i+j] += x * subrate
			noTarget[i+j] += x * (1 - subrate)
		}
	}
	return timing
}

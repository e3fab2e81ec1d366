package odds

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestRateTable(t *testing.T) {
	rates := Rates()
	if rates[0] != 0.02 || rates[PityLevels-1] != 1 {
		t.Fatalf("unexpected table ends: %v .. %v", rates[0], rates[PityLevels-1])
	}
	for p := 1; p < PityLevels; p++ {
		if rates[p] < rates[p-1] {
			t.Fatalf("rate drops at pity %d: %v < %v", p, rates[p], rates[p-1])
		}
	}
	// rare outcome timing covers everything but the forced pull at max pity
	sum := floats.Sum(rareInExactly[:])
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("rare timing mass = %v", sum)
	}
}

func TestGenerateMatchesPityDistribution(t *testing.T) {
	pdist, err := Generate(1, PityLevels, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	miss := 1.0
	for n := 1; n <= PityLevels; n++ {
		want := Rate(n-1) * miss
		if !scalar.EqualWithinAbsOrRel(pdist[n-1], want, 1e-15, 1e-12) {
			t.Fatalf("pull %d: got %v want %v", n, pdist[n-1], want)
		}
		miss *= 1 - Rate(n-1)
	}
	if s := floats.Sum(pdist); math.Abs(s-1) > 1e-12 {
		t.Fatalf("hard pity should complete the target within %d pulls, mass=%v", PityLevels, s)
	}
}

func TestGenerateFocusWithCertainSubrateMatchesPlain(t *testing.T) {
	plain, err := Generate(2, 300, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	focus, err := Generate(2, 300, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	// the focus tables skip the forced pull at max pity, worth well under 1e-15
	for i := range plain {
		if !scalar.EqualWithinAbs(plain[i], focus[i], 1e-12) {
			t.Fatalf("pull %d: plain %v focus %v", i+1, plain[i], focus[i])
		}
	}
}

func TestGenerateCumulativeMassIsMonotone(t *testing.T) {
	for _, focus := range []bool{false, true} {
		prev := 0.0
		var full []float64
		for _, budget := range []int{1, 10, 50, 100, 151, 249, 400} {
			pdist, err := Generate(3, budget, 0.35, focus)
			if err != nil {
				t.Fatal(err)
			}
			if len(pdist) != budget {
				t.Fatalf("focus=%v: len=%d want %d", focus, len(pdist), budget)
			}
			for i, v := range pdist {
				if v < 0 {
					t.Fatalf("focus=%v budget=%d: negative mass %v at %d", focus, budget, v, i)
				}
			}
			sum := floats.Sum(pdist)
			if sum < prev || sum > 1+1e-12 {
				t.Fatalf("focus=%v budget=%d: cumulative %v after %v", focus, budget, sum, prev)
			}
			prev = sum
			full = pdist
		}
		// a smaller budget is a prefix of a larger one
		short, _ := Generate(3, 100, 0.35, focus)
		for i := range short {
			if short[i] != full[i] {
				t.Fatalf("focus=%v: prefix differs at %d", focus, i)
			}
		}
	}
}

func TestGenerateFocusNeverTrailsPlain(t *testing.T) {
	for _, subrate := range []float64{0.2, 0.35, 0.5} {
		plain, _ := Generate(1, FocusWindow, subrate, false)
		focus, _ := Generate(1, FocusWindow, subrate, true)
		var cp, cf float64
		for n := range plain {
			cp += plain[n]
			cf += focus[n]
			if cf < cp-1e-12 {
				t.Fatalf("subrate %v pull %d: focus %v < plain %v", subrate, n+1, cf, cp)
			}
		}
	}

	// past the window the guarantee makes the difference
	plain, _ := Generate(1, 300, 0.35, false)
	focus, _ := Generate(1, 300, 0.35, true)
	if p, f := floats.Sum(plain), floats.Sum(focus); f < 1-1e-9 || p > 0.97 {
		t.Fatalf("expected focus to guarantee the target by 300 pulls: plain=%v focus=%v", p, f)
	}
}

func TestGenerateReferenceMass(t *testing.T) {
	cases := []struct {
		name    string
		target  int
		budget  int
		subrate float64
		focus   bool
		want    float64
	}{
		{"plain single", 1, 100, 0.5, false, 0.7778150440618723},
		{"plain triple", 3, 200, 0.35, false, 0.29267262625850277},
		{"plain double", 2, 300, 0.5, false, 0.9553053556831572},
		{"focus double", 2, 300, 0.5, true, 0.9843795754605852},
		{"focus triple", 3, 400, 0.35, true, 0.8954450197685285},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pdist, err := Generate(tc.target, tc.budget, tc.subrate, tc.focus)
			if err != nil {
				t.Fatal(err)
			}
			if got := floats.Sum(pdist); !scalar.EqualWithinAbs(got, tc.want, 1e-10) {
				t.Errorf("got %.15f want %.15f", got, tc.want)
			}
		})
	}
}

func TestGenerateEdges(t *testing.T) {
	pdist, err := Generate(3, 0, 0.5, false)
	if err != nil || len(pdist) != 0 {
		t.Fatalf("zero budget: got %v err=%v", pdist, err)
	}

	pdist, err = Generate(0, 5, 0.5, true)
	if err != nil {
		t.Fatal(err)
	}
	if pdist[0] != 1 || floats.Sum(pdist) != 1 {
		t.Fatalf("zero target should put all mass on the first pull: %v", pdist)
	}

	for _, s := range []float64{0, -0.1, 1.01, math.NaN()} {
		if _, err := Generate(1, 10, s, false); !errors.Is(err, ErrInvalidSubrate) {
			t.Errorf("subrate %v: err=%v", s, err)
		}
	}
	if _, err := Generate(-1, 10, 0.5, false); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("negative target: err=%v", err)
	}
}

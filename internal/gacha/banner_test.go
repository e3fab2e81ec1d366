package gacha

import (
	"testing"

	"github.com/xtding233/gacha-odds/internal/odds"
)

func newTestBanner(t *testing.T, b odds.Banner, rng RandomSource) *BannerSystem {
	t.Helper()
	p := DefaultSimParams(b)
	bs, err := newBanner(p, rng)
	if err != nil {
		t.Fatal(err)
	}
	return bs
}

func TestBannerFocusGuarantee(t *testing.T) {
	// 0.99 never hits before hard pity and never wins the subrate draw
	rng := constRNG(0.99)
	focus := newTestBanner(t, odds.Banner{Target: 1, Subrate: 0.5, HasFocus: true}, rng)
	plain := newTestBanner(t, odds.Banner{Target: 1, Subrate: 0.5}, rng)

	for draw := 1; draw <= 3*odds.PityLevels; draw++ {
		out, err := focus.Draw(0.02)
		if err != nil {
			t.Fatal(err)
		}
		po, err := plain.Draw(0.02)
		if err != nil {
			t.Fatal(err)
		}
		if po.IsTarget {
			t.Fatalf("plain banner should never win the subrate draw, draw %d", draw)
		}

		switch draw {
		case odds.PityLevels:
			// inside the window: off-target
			if !out.Hit || out.IsTarget {
				t.Fatalf("draw %d: %+v", draw, out)
			}
		case 2 * odds.PityLevels:
			// past the window: guaranteed
			if !out.IsTarget || !out.Guaranteed || !focus.FocusSpent {
				t.Fatalf("draw %d: expected guaranteed target, got %+v", draw, out)
			}
		case 3 * odds.PityLevels:
			// focus spent: back to the subrate draw
			if !out.Hit || out.IsTarget {
				t.Fatalf("draw %d: %+v", draw, out)
			}
		default:
			if out.Hit {
				t.Fatalf("draw %d: unexpected hit", draw)
			}
		}
	}
	if focus.Copies != 1 {
		t.Fatalf("copies = %d", focus.Copies)
	}
}

func TestBannerTargetInsideWindowKeepsFocus(t *testing.T) {
	// 0.01 wins every subrate draw; hits still need the 2% base rate
	focus := newTestBanner(t, odds.Banner{Target: 2, Subrate: 0.5, HasFocus: true}, constRNG(0.01))
	for i := 0; i < 5; i++ {
		out, err := focus.Draw(0.02)
		if err != nil {
			t.Fatal(err)
		}
		if !out.IsTarget || out.Guaranteed {
			t.Fatalf("draw %d: %+v", i+1, out)
		}
		if out.FocusCount != 0 || focus.FocusSpent {
			t.Fatalf("target inside the window should restart it: %+v", out)
		}
	}
}

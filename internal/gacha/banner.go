package gacha

import "github.com/xtding233/gacha-odds/internal/odds"

// BannerOutcome reports one draw's result under banner rules.
type BannerOutcome struct {
	Hit        bool // a rare outcome occurred this draw
	IsTarget   bool // the rare outcome was the banner's target
	Guaranteed bool // the target came from the focus guarantee
	Count      int  // draws since last Hit, after this draw
	FocusCount int  // draws since the last target while focus is unspent
	Copies     int  // targets collected so far
}

// BannerSystem layers one banner's rules on top of soft pity:
//   - SoftPity decides whether a rare outcome occurs.
//   - A rare outcome is the target with chance Subrate.
//   - With focus unspent, the first rare outcome after FocusWindow draws since
//     the last target is the target for sure, and spends the focus.
//     A target inside the window keeps focus and restarts its window.
type BannerSystem struct {
	SoftPity    *SoftPitySystem
	Subrate     float64
	FocusWindow int // 0 disables focus

	FocusCount int
	FocusSpent bool
	Copies     int
}

// NewBannerSystem builds the rules of b on top of soft.
func NewBannerSystem(soft *SoftPitySystem, b odds.Banner) *BannerSystem {
	bs := &BannerSystem{SoftPity: soft, Subrate: b.Subrate}
	if b.HasFocus {
		bs.FocusWindow = odds.FocusWindow
	}
	return bs
}

func (b *BannerSystem) focusActive() bool {
	return b.FocusWindow > 0 && !b.FocusSpent
}

// Draw performs one banner draw using base probability pBase.
func (b *BannerSystem) Draw(pBase float64) (BannerOutcome, error) {
	if b.focusActive() {
		b.FocusCount++
	}

	hit, err := b.SoftPity.Draw(pBase)
	if err != nil {
		return BannerOutcome{}, err
	}
	out := BannerOutcome{Hit: hit}

	if hit {
		switch {
		case b.focusActive() && b.FocusCount > b.FocusWindow:
			out.IsTarget, out.Guaranteed = true, true
			b.FocusSpent = true
		default:
			target, err := Draw(b.Subrate, b.SoftPity.RNG)
			if err != nil {
				return BannerOutcome{}, err
			}
			out.IsTarget = target
		}
		if out.IsTarget {
			b.Copies++
			if b.focusActive() {
				b.FocusCount = 0
			}
		}
	}

	out.Count = b.SoftPity.Count
	out.FocusCount = b.FocusCount
	out.Copies = b.Copies
	return out, nil
}

package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/xtding233/gacha-odds/internal/gacha"
	"github.com/xtding233/gacha-odds/internal/odds"
	"github.com/xtding233/gacha-odds/internal/pricing"
)

var ErrNoBanners = errors.New("scenario defines no banners")

// Overrides carries command-line overrides on top of the YAML layers.
type Overrides struct {
	Pulls      *int
	Tokens     *int // token balance
	SpendCents *int // money to convert into pulls through the store
}

// Resolver turns a game and scenario into engine inputs.
type Resolver interface {
	Resolve(game, scenario string, o Overrides) (Scenario, error)
}

var _ Resolver = (*Loader)(nil)

// Resolve merges default → game → scenario → overrides, validates the result
// and converts it into a Scenario.
func (l *Loader) Resolve(game, scenario string, o Overrides) (Scenario, error) {
	raw, err := l.LoadMerged(game, scenario)
	if err != nil {
		return Scenario{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return Scenario{}, err
	}
	return normalize(game, scenario, raw, o)
}

func normalize(game, scenario string, raw RawConfig, o Overrides) (Scenario, error) {
	sc := Scenario{Game: game, Name: scenario, Version: raw.Version, Notes: raw.Notes}

	if len(raw.Banners) == 0 {
		return Scenario{}, ErrNoBanners
	}
	for _, b := range raw.Banners {
		sc.Banners = append(sc.Banners, odds.Banner{
			Name:       b.Name,
			Target:     b.Target,
			Subrate:    b.Subrate,
			BonusPulls: b.BonusPulls,
			HasFocus:   b.Focus,
		})
	}

	sc.PBase, sc.Soft = gacha.DefaultSoftPity()
	sc.Pity = sc.Soft.Pity
	if err := applyDraw(&sc, raw.Draw); err != nil {
		return Scenario{}, err
	}

	if t := raw.Tokens; t != nil {
		sc.Token.Name = t.Name
		if t.PerDraw != nil {
			sc.Token.PerDraw = *t.PerDraw
		}
		if t.PerTenDraw != nil {
			sc.Token.PerTenDraw = *t.PerTenDraw
		}
		if t.Balance != nil {
			sc.Balance = *t.Balance
		}
	}
	if s := raw.Store; s != nil {
		sc.Catalog = pricing.Catalog{TokenName: sc.Token.Name, Currency: s.Currency, TaxRate: s.TaxRate}
		for _, p := range s.Packs {
			sc.Catalog.Packs = append(sc.Catalog.Packs, pricing.Pack(p))
		}
		sc.FirstTime = make(pricing.FirstTimeState)
		for _, id := range s.FirstTime {
			sc.FirstTime[id] = true
		}
	}

	if raw.Pulls != nil {
		sc.BasePulls = *raw.Pulls
	}
	if o.Pulls != nil {
		sc.BasePulls = *o.Pulls
	}
	if o.Tokens != nil {
		sc.Balance = *o.Tokens
	}
	if sc.BasePulls < 0 || sc.Balance < 0 {
		return Scenario{}, fmt.Errorf("pulls and token balance must be >= 0: %w", odds.ErrNegativeCount)
	}

	tokens := sc.Balance
	if o.SpendCents != nil && *o.SpendCents > 0 {
		plan := pricing.MaxTokensUnderBudget(sc.Catalog, *o.SpendCents, sc.FirstTime)
		tokens += plan.TotalTokens
	}
	sc.Pulls = sc.BasePulls + sc.Token.DrawsForTokens(tokens)
	return sc, nil
}

// applyDraw replaces the default rates with the configured draw section.
func applyDraw(sc *Scenario, d DrawConfig) error {
	if d.PBase != nil {
		sc.PBase = *d.PBase
	}
	if d.Pity != nil {
		sc.Pity = *d.Pity
	}

	if d.Soft != nil {
		switch d.Soft.Mode {
		case "", "none":
			sc.Soft = nil
			return nil
		}
		cfg := &gacha.SoftPityConfig{
			Mode:   gacha.SoftMode(d.Soft.Mode),
			Easing: gacha.Easing(d.Soft.Easing),
		}
		switch {
		case d.Soft.StartAt != nil:
			cfg.StartAt = *d.Soft.StartAt
		case d.Soft.StartPct != nil:
			cfg.StartAt = min(int(math.Ceil(*d.Soft.StartPct*float64(sc.Pity))), sc.Pity-1)
		}
		if d.Soft.Target != nil {
			cfg.TargetProb = *d.Soft.Target
		}
		if d.Soft.Increment != nil {
			cfg.Increment = *d.Soft.Increment
		}
		sc.Soft = cfg
	}
	sc.Soft.Pity = sc.Pity

	// surface config errors now rather than inside the simulator
	if _, err := gacha.NewSoftPitySystem(sc.Pity, sc.Soft, gacha.NewSeededRNG(0)); err != nil {
		return fmt.Errorf("draw.soft: %w", err)
	}
	return nil
}

// ResolveAdHoc resolves the default and game layers with banners given
// directly instead of a scenario file.
func (l *Loader) ResolveAdHoc(game string, banners []odds.Banner, o Overrides) (Scenario, error) {
	raw, err := l.LoadMerged(game, "")
	if err != nil {
		return Scenario{}, err
	}
	raw.Banners = make([]BannerConfig, len(banners))
	for i, b := range banners {
		raw.Banners[i] = BannerConfig{
			Name:       b.Name,
			Target:     b.Target,
			Subrate:    b.Subrate,
			BonusPulls: b.BonusPulls,
			Focus:      b.HasFocus,
		}
	}
	if err := ValidateRaw(raw); err != nil {
		return Scenario{}, err
	}
	return normalize(game, "ad-hoc", raw, o)
}

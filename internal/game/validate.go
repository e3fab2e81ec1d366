package game

import (
	"fmt"
	"strings"
)

// ValidateRaw checks semantic constraints of a RawConfig and reports every
// violation at once.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if cfg.Pulls != nil && *cfg.Pulls < 0 {
		errs = append(errs, "pulls must be >= 0")
	}

	// banners
	for i, b := range cfg.Banners {
		if !(b.Subrate > 0 && b.Subrate <= 1) {
			errs = append(errs, fmt.Sprintf("banners[%d].subrate must be in (0,1]", i))
		}
		if b.Target < 0 {
			errs = append(errs, fmt.Sprintf("banners[%d].target must be >= 0", i))
		}
		if b.BonusPulls < 0 {
			errs = append(errs, fmt.Sprintf("banners[%d].bonus_pulls must be >= 0", i))
		}
	}

	// draw.pity
	if cfg.Draw.Pity != nil && *cfg.Draw.Pity <= 0 {
		errs = append(errs, "draw.pity must be >= 1")
	}
	// draw.p_base
	if cfg.Draw.PBase != nil {
		if *cfg.Draw.PBase <= 0 || *cfg.Draw.PBase >= 1 {
			errs = append(errs, "draw.p_base must be in (0,1)")
		}
	}

	// soft
	if soft := cfg.Draw.Soft; soft != nil {
		switch soft.Mode {
		case "target_ramp":
			if soft.Target == nil {
				errs = append(errs, "draw.soft.target is required for mode=target_ramp")
			} else if *soft.Target <= 0 || *soft.Target >= 1 {
				errs = append(errs, "draw.soft.target must be in (0,1)")
			}
			if soft.StartAt == nil && soft.StartPct == nil {
				errs = append(errs, "draw.soft.start_at or start_pct is required for mode=target_ramp")
			}
		case "per_draw_increment":
			if soft.StartAt == nil {
				errs = append(errs, "draw.soft.start_at is required for mode=per_draw_increment")
			}
			if soft.Increment == nil {
				errs = append(errs, "draw.soft.increment is required for mode=per_draw_increment")
			} else if *soft.Increment <= 0 {
				errs = append(errs, "draw.soft.increment must be > 0 for mode=per_draw_increment")
			}
		case "", "none":
			// no soft pity
		default:
			errs = append(errs, "draw.soft.mode must be one of: target_ramp, per_draw_increment, none")
		}

		if cfg.Draw.Pity != nil && soft.StartAt != nil {
			if *soft.StartAt < 0 || *soft.StartAt >= *cfg.Draw.Pity {
				errs = append(errs, "draw.soft.start_at must satisfy 0 <= start_at < pity")
			}
		}
		if soft.StartPct != nil {
			if *soft.StartPct < 0 || *soft.StartPct > 1 {
				errs = append(errs, "draw.soft.start_pct must be in [0,1]")
			}
		}
	}

	// tokens
	if t := cfg.Tokens; t != nil {
		if t.PerDraw != nil && *t.PerDraw < 0 {
			errs = append(errs, "tokens.per_draw must be >= 0")
		}
		if t.PerTenDraw != nil && *t.PerTenDraw < 0 {
			errs = append(errs, "tokens.per_ten_draw must be >= 0")
		}
		if t.Balance != nil && *t.Balance < 0 {
			errs = append(errs, "tokens.balance must be >= 0")
		}
	}

	// store
	if s := cfg.Store; s != nil {
		if s.TaxRate < 0 {
			errs = append(errs, "store.tax_rate must be >= 0")
		}
		ids := make(map[string]bool)
		for i, p := range s.Packs {
			if p.ID == "" {
				errs = append(errs, fmt.Sprintf("store.packs[%d].id is required", i))
			} else if ids[p.ID] {
				errs = append(errs, fmt.Sprintf("store.packs[%d].id %q is duplicated", i, p.ID))
			}
			ids[p.ID] = true
			if p.Tokens < 0 || p.BonusTokens < 0 || p.PriceCents < 0 {
				errs = append(errs, fmt.Sprintf("store.packs[%d] amounts must be >= 0", i))
			}
		}
		for _, id := range s.FirstTime {
			if !ids[id] {
				errs = append(errs, fmt.Sprintf("store.first_time references unknown pack %q", id))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

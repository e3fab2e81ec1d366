package odds

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidSubrate    = errors.New("invalid subrate; must be in (0,1]")
	ErrNegativeCount     = errors.New("target, pulls and bonus pulls must be >= 0")
	ErrNoBanners         = errors.New("at least one banner is required")
	ErrBudgetUnderflow   = errors.New("not enough pulls to reserve one pull per banner")
	ErrInvalidConfidence = errors.New("invalid confidence; must be in (0,1]")
	ErrUnreachable       = errors.New("confidence not reachable within the pull limit")
)

// Banner describes one independent reward pool.
type Banner struct {
	Name       string  // optional label for reports
	Target     int     // copies of the rare target required
	Subrate    float64 // chance a rare outcome is the target
	BonusPulls int     // pulls usable only on this banner
	HasFocus   bool    // focus guarantee after FocusWindow pulls
}

func (b Banner) label(i int) string {
	if b.Name != "" {
		return fmt.Sprintf("banner %d (%s)", i, b.Name)
	}
	return fmt.Sprintf("banner %d", i)
}

// Validate reports whether the banner parameters are consistent.
func (b Banner) Validate() error {
	if err := validateSubrate(b.Subrate); err != nil {
		return err
	}
	if b.Target < 0 || b.BonusPulls < 0 {
		return ErrNegativeCount
	}
	return nil
}

func validateSubrate(s float64) error {
	if math.IsNaN(s) || s <= 0 || s > 1 {
		return ErrInvalidSubrate
	}
	return nil
}

// Allowances returns, per banner, the most pulls it can receive: the shared
// budget plus its own bonus pulls, minus one pull reserved for every other
// banner.
func Allowances(banners []Banner, pulls int) ([]int, error) {
	if len(banners) == 0 {
		return nil, ErrNoBanners
	}
	if pulls < 0 {
		return nil, ErrNegativeCount
	}
	reserved := len(banners) - 1
	out := make([]int, len(banners))
	for i, b := range banners {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", b.label(i), err)
		}
		out[i] = pulls + b.BonusPulls - reserved
		if out[i] < 0 {
			return nil, fmt.Errorf("%s: %d pulls + %d bonus < %d reserved: %w",
				b.label(i), pulls, b.BonusPulls, reserved, ErrBudgetUnderflow)
		}
	}
	return out, nil
}

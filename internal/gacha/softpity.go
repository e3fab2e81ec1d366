package gacha

import (
	"errors"

	"github.com/xtding233/gacha-odds/internal/odds"
)

// Easing specifies how the probability ramps up as we approach pity.
type Easing string

const (
	EaseLinear     Easing = "linear"
	EaseOutQuad    Easing = "easeOutQuad"
	EaseInOutCubic Easing = "easeInOutCubic"
)

// SoftMode selects how the rate grows before hard pity.
type SoftMode string

const (
	// ramp from the base rate to TargetProb at draw Pity-1
	ModeTargetRamp SoftMode = "target_ramp"
	// add Increment for every draw from StartAt on
	ModePerDrawIncrement SoftMode = "per_draw_increment"
)

var ErrSoftPityConfig = errors.New("invalid soft pity config")

// SoftPityConfig defines the ramp behaviour before the hard pity.
// Example: Pity=90, StartAt=74, TargetProb=0.5 ramps draws #74..#89 to 0.5.
// Example: Pity=99, StartAt=50, Increment=0.02 adds 2% per draw from #50.
type SoftPityConfig struct {
	Mode       SoftMode
	Pity       int     // hard pity threshold
	StartAt    int     // draws since last hit at which the ramp begins
	TargetProb float64 // target_ramp: probability at draw Pity-1, in (0,1)
	Increment  float64 // per_draw_increment: added per draw, > 0
	Easing     Easing  // target_ramp easing
}

// DefaultSoftPity reproduces the rate table the exact engine uses.
func DefaultSoftPity() (float64, *SoftPityConfig) {
	return 0.02, &SoftPityConfig{
		Mode:      ModePerDrawIncrement,
		Pity:      odds.PityLevels,
		StartAt:   50,
		Increment: 0.02,
	}
}

// normalize validates and fills defaults.
func (c *SoftPityConfig) normalize() error {
	if c.Pity <= 1 {
		return ErrSoftPityConfig
	}
	if c.StartAt < 0 {
		c.StartAt = 0
	}
	// ramp ends at Pity-1, so it needs room before that
	if c.StartAt >= c.Pity-1 {
		return ErrSoftPityConfig
	}
	if c.Mode == "" {
		c.Mode = ModeTargetRamp
	}
	switch c.Mode {
	case ModeTargetRamp:
		if c.TargetProb <= 0 || c.TargetProb >= 1 {
			return ErrSoftPityConfig
		}
		if c.Easing == "" {
			c.Easing = EaseLinear
		}
	case ModePerDrawIncrement:
		if c.Increment <= 0 {
			return ErrSoftPityConfig
		}
	default:
		return ErrSoftPityConfig
	}
	return nil
}

// SoftPitySystem extends PitySystem with a soft ramp before hard pity.
type SoftPitySystem struct {
	PitySystem
	Soft *SoftPityConfig
}

// NewSoftPitySystem creates a pity system with an optional soft ramp.
// If soft is nil it behaves like plain hard pity.
func NewSoftPitySystem(pity int, soft *SoftPityConfig, rng RandomSource) (*SoftPitySystem, error) {
	if rng == nil {
		rng = DefaultRNG()
	}
	base := PitySystem{Pity: pity, RNG: rng}
	if soft != nil {
		cfg := *soft
		cfg.Pity = pity
		if err := cfg.normalize(); err != nil {
			return nil, err
		}
		soft = &cfg
	}
	return &SoftPitySystem{PitySystem: base, Soft: soft}, nil
}

// effectiveProb is the chance the next draw hits at the current count:
// 1 at hard pity, the ramped rate once Count >= StartAt, else pBase.
func (s *SoftPitySystem) effectiveProb(pBase float64) float64 {
	if s.forced() {
		return 1.0
	}
	if s.Soft == nil || s.Count < s.Soft.StartAt {
		return pBase
	}

	var p float64
	switch s.Soft.Mode {
	case ModePerDrawIncrement:
		p = pBase + s.Soft.Increment*float64(s.Count-s.Soft.StartAt+1)
	default:
		p = s.ramp(pBase)
	}

	if p < 0 {
		p = 0
	}
	// stay below 1 so only hard pity guarantees a hit
	if p > 0.999999999999 {
		p = 0.999999999999
	}
	return p
}

func (s *SoftPitySystem) ramp(pBase float64) float64 {
	end := s.Pity - 1
	length := float64(end - s.Soft.StartAt)
	if length <= 0 {
		return pBase
	}
	t := float64(s.Count-s.Soft.StartAt) / length
	t = min(max(t, 0), 1)

	switch s.Soft.Easing {
	case EaseOutQuad:
		t = 1 - (1-t)*(1-t)
	case EaseInOutCubic:
		if t < 0.5 {
			t = 4 * t * t * t
		} else {
			t = 1 - (-2*t+2)*(-2*t+2)*(-2*t+2)/2
		}
	}
	return pBase + (s.Soft.TargetProb-pBase)*t
}

// Curve returns the hit chance at every count from 0 to Pity-1, leaving the
// system's state untouched.
func (s *SoftPitySystem) Curve(pBase float64) []float64 {
	if s.Pity <= 0 {
		return nil
	}
	saved := s.Count
	defer func() { s.Count = saved }()

	curve := make([]float64, s.Pity)
	for c := range curve {
		s.Count = c
		curve[c] = s.effectiveProb(pBase)
	}
	return curve
}

// Draw performs one draw using the soft/hard pity rules.
func (s *SoftPitySystem) Draw(pBase float64) (bool, error) {
	if s.forced() {
		s.record(true)
		return true, nil
	}
	hit, err := Draw(s.effectiveProb(pBase), s.RNG)
	if err != nil {
		return false, err
	}
	s.record(hit)
	return hit, nil
}

package game

import (
	"github.com/xtding233/gacha-odds/internal/gacha"
	"github.com/xtding233/gacha-odds/internal/odds"
	"github.com/xtding233/gacha-odds/internal/pricing"
	"github.com/xtding233/gacha-odds/internal/token"
)

// RawConfig is one YAML layer as written on disk.
type RawConfig struct {
	Version string         `yaml:"version"`
	Pulls   *int           `yaml:"pulls,omitempty"`
	Banners []BannerConfig `yaml:"banners,omitempty"`
	Draw    DrawConfig     `yaml:"draw"`
	Tokens  *TokenConfig   `yaml:"tokens,omitempty"`
	Store   *StoreConfig   `yaml:"store,omitempty"`
	Notes   string         `yaml:"notes,omitempty"`
}

type BannerConfig struct {
	Name       string  `yaml:"name"`
	Target     int     `yaml:"target"`
	Subrate    float64 `yaml:"subrate"`
	BonusPulls int     `yaml:"bonus_pulls"`
	Focus      bool    `yaml:"focus"`
}

// DrawConfig drives the simulator's rare-outcome rates. The exact engine
// always uses its own table.
type DrawConfig struct {
	PBase *float64 `yaml:"p_base"`
	Pity  *int     `yaml:"pity"`
	Soft  *SoftCfg `yaml:"soft,omitempty"`
}

type SoftCfg struct {
	Mode      string   `yaml:"mode"` // "target_ramp" | "per_draw_increment" | "none"
	StartAt   *int     `yaml:"start_at,omitempty"`
	StartPct  *float64 `yaml:"start_pct,omitempty"`
	Target    *float64 `yaml:"target,omitempty"`
	Increment *float64 `yaml:"increment,omitempty"`
	Easing    string   `yaml:"easing,omitempty"`
}

type TokenConfig struct {
	Name       string `yaml:"name,omitempty"`
	PerDraw    *int   `yaml:"per_draw"`
	PerTenDraw *int   `yaml:"per_ten_draw"`
	Balance    *int   `yaml:"balance,omitempty"`
}

type StoreConfig struct {
	Currency  string       `yaml:"currency"`
	TaxRate   float64      `yaml:"tax_rate"`
	FirstTime []string     `yaml:"first_time,omitempty"` // pack ids whose x2 is unused
	Packs     []PackConfig `yaml:"packs"`
}

type PackConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Tokens      int    `yaml:"tokens"`
	BonusTokens int    `yaml:"bonus_tokens"`
	FirstTimeX2 bool   `yaml:"first_time_x2"`
	PriceCents  int    `yaml:"price_cents"`
}

// Scenario is a resolved, validated calculation input.
type Scenario struct {
	Game    string
	Name    string
	Version string // effective config version for tracing
	Notes   string

	Pulls     int // shared budget, including pulls bought with tokens
	BasePulls int // pulls given directly in config or overrides
	Banners   []odds.Banner

	// simulator mechanics
	PBase float64
	Pity  int
	Soft  *gacha.SoftPityConfig

	Token     token.Token
	Balance   int
	Catalog   pricing.Catalog
	FirstTime pricing.FirstTimeState
}

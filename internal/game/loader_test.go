package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xtding233/gacha-odds/internal/gacha"
	"github.com/xtding233/gacha-odds/internal/odds"
)

const defaultYAML = `
version: "1"
draw:
  p_base: 0.02
  pity: 99
  soft:
    mode: per_draw_increment
    start_at: 50
    increment: 0.02
tokens:
  name: Originium
  per_draw: 600
store:
  currency: CAD
  packs:
    - {id: small, name: Small, tokens: 600, price_cents: 199}
`

const gameYAML = `
version: "2"
pulls: 100
banners:
  - {name: standard, target: 1, subrate: 0.5}
`

const scenarioYAML = `
version: "3"
pulls: 170
banners:
  - {name: limited, target: 1, subrate: 0.35, bonus_pulls: 24}
  - {name: standard, target: 1, subrate: 0.5, focus: true}
tokens:
  balance: 1300
`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	l := NewLoader(t.TempDir())
	p := l.Paths()
	writeFile(t, p.DefaultPath(), defaultYAML)
	writeFile(t, p.GamePath("ak"), gameYAML)
	writeFile(t, p.ScenarioPath("ak", "double"), scenarioYAML)
	writeFile(t, p.ScenarioPath("ak", "single"), "notes: only the game banner\n")
	return l
}

func TestResolveLayers(t *testing.T) {
	l := newTestLoader(t)

	sc, err := l.Resolve("ak", "double", Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if sc.Version != "3" || sc.BasePulls != 170 {
		t.Fatalf("scenario layer should win: %+v", sc)
	}
	// 1300 tokens at 600 per draw buy two more pulls
	if sc.Pulls != 172 {
		t.Fatalf("pulls = %d want 172", sc.Pulls)
	}
	want := []odds.Banner{
		{Name: "limited", Target: 1, Subrate: 0.35, BonusPulls: 24},
		{Name: "standard", Target: 1, Subrate: 0.5, HasFocus: true},
	}
	if len(sc.Banners) != len(want) {
		t.Fatalf("banners = %+v", sc.Banners)
	}
	for i := range want {
		if sc.Banners[i] != want[i] {
			t.Errorf("banner %d = %+v want %+v", i, sc.Banners[i], want[i])
		}
	}
	if sc.Soft == nil || sc.Soft.Mode != gacha.ModePerDrawIncrement || sc.Soft.StartAt != 50 || sc.Pity != 99 {
		t.Fatalf("draw config not carried: %+v %+v", sc.Soft, sc)
	}

	sc, err = l.Resolve("ak", "single", Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if sc.Version != "2" || sc.Pulls != 100 || len(sc.Banners) != 1 || sc.Notes != "only the game banner" {
		t.Fatalf("game layer should show through: %+v", sc)
	}
}

func TestResolveOverrides(t *testing.T) {
	l := newTestLoader(t)
	pulls, tokens, spend := 50, 0, 400
	sc, err := l.Resolve("ak", "double", Overrides{Pulls: &pulls, Tokens: &tokens, SpendCents: &spend})
	if err != nil {
		t.Fatal(err)
	}
	// 400 cents buy two small packs, 1200 tokens, two pulls
	if sc.BasePulls != 50 || sc.Pulls != 52 {
		t.Fatalf("got base %d total %d", sc.BasePulls, sc.Pulls)
	}
}

func TestResolveErrors(t *testing.T) {
	l := newTestLoader(t)
	if _, err := l.Resolve("ak", "missing", Overrides{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing scenario: err=%v", err)
	}

	writeFile(t, l.Paths().ScenarioPath("ak", "broken"), `
banners:
  - {target: -1, subrate: 1.5}
draw:
  soft: {mode: exponential}
`)
	_, err := l.Resolve("ak", "broken", Overrides{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, msg := range []string{"banners[0].subrate", "banners[0].target", "draw.soft.mode"} {
		if !strings.Contains(err.Error(), msg) {
			t.Errorf("error %q does not mention %s", err, msg)
		}
	}

	empty := NewLoader(t.TempDir())
	writeFile(t, empty.Paths().DefaultPath(), "pulls: 10\n")
	if _, err := empty.Resolve("none", "", Overrides{}); !errors.Is(err, ErrNoBanners) {
		t.Errorf("no banners: err=%v", err)
	}
}

func TestLoaderCacheAndScenarios(t *testing.T) {
	l := newTestLoader(t)
	if _, err := l.LoadMerged("ak", "double"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, l.Paths().ScenarioPath("ak", "double"), "pulls: 5\n")

	cfg, _ := l.LoadMerged("ak", "double")
	if *cfg.Pulls != 170 {
		t.Fatalf("cached config expected, got pulls=%d", *cfg.Pulls)
	}
	l.Invalidate()
	cfg, _ = l.LoadMerged("ak", "double")
	if *cfg.Pulls != 5 {
		t.Fatalf("invalidate should reload, got pulls=%d", *cfg.Pulls)
	}

	names, err := l.Scenarios("ak")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(names, ",") != "double,single" {
		t.Fatalf("scenarios = %v", names)
	}
	if names, err := l.Scenarios("unknown"); err != nil || len(names) != 0 {
		t.Fatalf("unknown game: %v %v", names, err)
	}
}

func TestApplyDrawStartPct(t *testing.T) {
	pct, target := 0.8, 0.5
	sc := Scenario{}
	sc.PBase, sc.Soft = gacha.DefaultSoftPity()
	sc.Pity = 90
	err := applyDraw(&sc, DrawConfig{Soft: &SoftCfg{Mode: "target_ramp", StartPct: &pct, Target: &target}})
	if err != nil {
		t.Fatal(err)
	}
	if sc.Soft.StartAt != 72 || sc.Soft.Pity != 90 {
		t.Fatalf("soft = %+v", sc.Soft)
	}
}

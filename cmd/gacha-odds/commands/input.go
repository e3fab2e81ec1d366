package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xtding233/gacha-odds/internal/game"
	"github.com/xtding233/gacha-odds/internal/odds"
)

// inputFlags are shared by the commands that evaluate scenarios.
type inputFlags struct {
	banners    []string
	pulls      int
	tokens     int
	spendCents int
	all        bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringArrayVarP(&f.banners, "banner", "b", nil, "ad-hoc banner `spec` name=x,target=1,subrate=0.35,bonus=24,focus=false (repeatable, in pull order)")
	fs.IntVarP(&f.pulls, "pulls", "n", 0, "shared pull budget (overrides the scenario)")
	fs.IntVar(&f.tokens, "tokens", 0, "premium currency balance (overrides the scenario)")
	fs.IntVar(&f.spendCents, "spend-cents", 0, "money to spend in the store, in cents")
	fs.BoolVar(&f.all, "all", false, "evaluate every scenario of the game")
}

func (f *inputFlags) overrides(cmd *cobra.Command) game.Overrides {
	var o game.Overrides
	if cmd.Flags().Changed("pulls") {
		o.Pulls = &f.pulls
	}
	if cmd.Flags().Changed("tokens") {
		o.Tokens = &f.tokens
	}
	if cmd.Flags().Changed("spend-cents") {
		o.SpendCents = &f.spendCents
	}
	return o
}

// scenarios resolves the command's inputs: ad-hoc banners, named scenarios,
// or every scenario of the game with --all.
func (a *app) scenarios(cmd *cobra.Command, args []string, f *inputFlags) ([]game.Scenario, error) {
	o := f.overrides(cmd)

	if len(f.banners) > 0 {
		if len(args) > 0 || f.all {
			return nil, errors.New("--banner cannot be combined with scenario names or --all")
		}
		if o.Pulls == nil {
			return nil, errors.New("--pulls is required with --banner")
		}
		banners := make([]odds.Banner, len(f.banners))
		for i, s := range f.banners {
			b, err := parseBanner(s)
			if err != nil {
				return nil, fmt.Errorf("--banner %q: %w", s, err)
			}
			if b.Name == "" {
				b.Name = fmt.Sprintf("banner%d", i+1)
			}
			banners[i] = b
		}
		sc, err := a.loader.ResolveAdHoc(a.cfg.Game, banners, o)
		if err != nil {
			return nil, err
		}
		return []game.Scenario{sc}, nil
	}

	names := args
	if f.all {
		all, err := a.loader.Scenarios(a.cfg.Game)
		if err != nil {
			return nil, err
		}
		names = all
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no scenario given and none found for game %q; pass a name, --all or --banner", a.cfg.Game)
	}

	out := make([]game.Scenario, 0, len(names))
	for _, name := range names {
		sc, err := a.loader.Resolve(a.cfg.Game, name, o)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

// parseBanner reads "key=value" pairs separated by commas. Target defaults
// to 1; subrate is required.
func parseBanner(spec string) (odds.Banner, error) {
	kv := make(map[string]string)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return odds.Banner{}, fmt.Errorf("expected key=value, got %q", part)
		}
		kv[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	b := odds.Banner{Name: kv["name"], Target: 1}
	delete(kv, "name")

	var err error
	if b.Target, err = parseInt(kv, "target", b.Target); err != nil {
		return odds.Banner{}, err
	}
	if b.BonusPulls, err = parseInt(kv, "bonus", 0); err != nil {
		return odds.Banner{}, err
	}
	if _, ok := kv["subrate"]; !ok {
		return odds.Banner{}, errors.New("missing subrate")
	}
	if b.Subrate, err = parseFloat(kv, "subrate"); err != nil {
		return odds.Banner{}, err
	}
	if v, ok := kv["focus"]; ok {
		delete(kv, "focus")
		if b.HasFocus, err = strconv.ParseBool(v); err != nil {
			return odds.Banner{}, fmt.Errorf("invalid focus %q", v)
		}
	}
	for k := range kv {
		return odds.Banner{}, fmt.Errorf("unknown key %q", k)
	}
	return b, b.Validate()
}

func parseFloat(kv map[string]string, key string) (float64, error) {
	s := kv[key]
	delete(kv, key)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}

func parseInt(kv map[string]string, key string, fallback int) (int, error) {
	s, ok := kv[key]
	if !ok {
		return fallback, nil
	}
	delete(kv, key)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}

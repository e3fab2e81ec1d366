package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/xtding233/gacha-odds/internal/game"
	"github.com/xtding233/gacha-odds/internal/odds"
)

type bannerResult struct {
	Name       string  `json:"name"`
	Target     int     `json:"target"`
	Subrate    float64 `json:"subrate"`
	BonusPulls int     `json:"bonus_pulls,omitempty"`
	Focus      bool    `json:"focus,omitempty"`
	MaxPulls   int     `json:"max_pulls"`
	Reach      float64 `json:"reach"`
}

type calcResult struct {
	Game        string         `json:"game"`
	Scenario    string         `json:"scenario"`
	Version     string         `json:"version,omitempty"`
	Pulls       int            `json:"pulls"`
	Window      int            `json:"window"`
	ConvSize    int            `json:"conv_size"`
	Probability float64        `json:"probability"`
	Banners     []bannerResult `json:"banners"`
}

func newCalcResult(sc game.Scenario, r odds.Report) calcResult {
	res := calcResult{
		Game:        sc.Game,
		Scenario:    sc.Name,
		Version:     sc.Version,
		Pulls:       r.Pulls,
		Window:      r.Window,
		ConvSize:    r.ConvSize,
		Probability: r.Probability,
	}
	for _, br := range r.Banners {
		res.Banners = append(res.Banners, bannerResult{
			Name:       br.Banner.Name,
			Target:     br.Banner.Target,
			Subrate:    br.Banner.Subrate,
			BonusPulls: br.Banner.BonusPulls,
			Focus:      br.Banner.HasFocus,
			MaxPulls:   br.MaxPulls,
			Reach:      br.Reach,
		})
	}
	return res
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCalcTable(w io.Writer, results []calcResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tPULLS\tWINDOW\tPROBABILITY")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.Scenario, r.Pulls, r.Window, percent(r.Probability))
		for _, b := range r.Banners {
			fmt.Fprintf(tw, "  %s\ttarget %d @ %.2f%s\tmax %d\treach %s\n",
				b.Name, b.Target, b.Subrate, focusMark(b.Focus, b.BonusPulls), b.MaxPulls, percent(b.Reach))
		}
	}
	return tw.Flush()
}

func focusMark(focus bool, bonus int) string {
	s := ""
	if bonus > 0 {
		s += fmt.Sprintf(" +%d", bonus)
	}
	if focus {
		s += " focus"
	}
	return s
}

func percent(p float64) string {
	return fmt.Sprintf("%.4f%%", p*100)
}

package ui

import (
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyeng-labs/skygraph/pkg/model"
)

func TestThemeFg_DegradesOnLowColorTerminals(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	cases := []struct {
		name    string
		profile colorprofile.Profile
		want    lipgloss.TerminalColor
	}{
		{"truecolor keeps hex", colorprofile.TrueColor, lipgloss.Color("#FF5555")},
		{"ansi256 keeps hex", colorprofile.ANSI256, lipgloss.Color("#FF5555")},
		{"16-color falls back to white", colorprofile.ANSI, lipgloss.ANSIColor(7)},
		{"ascii falls back to white", colorprofile.Ascii, lipgloss.ANSIColor(7)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			TermProfile = tc.profile
			if got := ThemeFg("#FF5555"); got != tc.want {
				t.Errorf("ThemeFg(#FF5555) at %v = %v, want %v", tc.profile, got, tc.want)
			}
		})
	}
}

func TestTheme_RiskStyle(t *testing.T) {
	th := TestTheme()

	if got := th.RiskStyle(model.RiskHigh); got != &th.RiskHigh {
		t.Error("RiskHigh not mapped to its precomputed style")
	}
	if got := th.RiskStyle(model.RiskMedium); got != &th.RiskMedium {
		t.Error("RiskMedium not mapped to its precomputed style")
	}
	if got := th.RiskStyle(model.RiskLow); got != &th.RiskLow {
		t.Error("RiskLow not mapped to its precomputed style")
	}
	if got := th.RiskStyle(model.RiskNone); got != &th.MutedText {
		t.Error("RiskNone should fall back to the muted style")
	}
}

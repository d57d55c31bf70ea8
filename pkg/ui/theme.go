package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyeng-labs/skygraph/pkg/model"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Shared palette. Light mode colors darkened for contrast on white
// backgrounds (WCAG AA).
var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
)

// Theme bundles the scene's color policy and the precomputed styles the
// renderer reuses every frame (creating lipgloss styles per cell per frame
// shows up in profiles fast).
type Theme struct {
	Renderer *lipgloss.Renderer

	// Node/edge color policy. Standard nodes always use Standard regardless
	// of status; requirement nodes and edges map status → color.
	Standard     lipgloss.AdaptiveColor
	Compliant    lipgloss.AdaptiveColor
	Partial      lipgloss.AdaptiveColor
	NonCompliant lipgloss.AdaptiveColor

	// UI elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Precomputed styles
	Header     lipgloss.Style
	StatusBar  lipgloss.Style
	MutedText  lipgloss.Style
	Hovered    lipgloss.Style
	Selected   lipgloss.Style
	RiskHigh   lipgloss.Style
	RiskMedium lipgloss.Style
	RiskLow    lipgloss.Style

	// Per-policy-color node styles at the three pulse weights (dim,
	// normal, bright), computed once at startup. Held by pointer because
	// the canvas detects style runs by pointer identity.
	nodeStyles map[lipgloss.AdaptiveColor]*[3]lipgloss.Style
	edgeStyles map[lipgloss.AdaptiveColor]*lipgloss.Style
}

// DefaultTheme returns the standard adaptive theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		// Standards render in the fixed "standard" blue no matter what the
		// assessment said; only requirement nodes carry verdict colors.
		Standard:     lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#6699FF"},
		Compliant:    lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
		Partial:      lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
		NonCompliant: lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     ColorMuted,
	}

	t.Header = r.NewStyle().
		Background(ColorPrimary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.StatusBar = r.NewStyle().Foreground(t.Muted)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.Hovered = r.NewStyle().Foreground(ColorText).Bold(true).Underline(true)
	t.Selected = r.NewStyle().Foreground(ColorPrimary).Bold(true).Reverse(true)

	// Risk accents are fixed hexes rather than adaptive pairs, so they go
	// through ThemeFg to degrade on 16-color terminals.
	t.RiskHigh = r.NewStyle().Foreground(ThemeFg("#FF5555")).Bold(true)
	t.RiskMedium = r.NewStyle().Foreground(ThemeFg("#FFB86C"))
	t.RiskLow = r.NewStyle().Foreground(ThemeFg("#4ECDC4"))

	t.nodeStyles = make(map[lipgloss.AdaptiveColor]*[3]lipgloss.Style, 4)
	t.edgeStyles = make(map[lipgloss.AdaptiveColor]*lipgloss.Style, 4)
	for _, c := range []lipgloss.AdaptiveColor{t.Standard, t.Compliant, t.Partial, t.NonCompliant} {
		t.nodeStyles[c] = &[3]lipgloss.Style{
			r.NewStyle().Foreground(c).Faint(true),
			r.NewStyle().Foreground(c),
			r.NewStyle().Foreground(c).Bold(true),
		}
		edge := r.NewStyle().Foreground(c).Faint(true)
		t.edgeStyles[c] = &edge
	}

	return t
}

// StatusColor maps a verdict to its link/requirement color. Absent or
// unrecognized statuses fall through to the non-compliant color, matching
// the original viewer's pessimistic default.
func (t Theme) StatusColor(s model.Status) lipgloss.AdaptiveColor {
	switch s {
	case model.StatusCompliant:
		return t.Compliant
	case model.StatusPartial:
		return t.Partial
	default:
		return t.NonCompliant
	}
}

// NodeColor applies the color policy for a node.
func (t Theme) NodeColor(n *model.Node) lipgloss.AdaptiveColor {
	if n.Kind == model.KindStandard {
		return t.Standard
	}
	return t.StatusColor(n.Status)
}

// NodeStyle returns the precomputed style for a policy color at a pulse
// weight (0 dim, 1 normal, 2 bright).
func (t *Theme) NodeStyle(c lipgloss.AdaptiveColor, weight int) *lipgloss.Style {
	styles, ok := t.nodeStyles[c]
	if !ok {
		return &t.MutedText
	}
	if weight < 0 {
		weight = 0
	}
	if weight > 2 {
		weight = 2
	}
	return &styles[weight]
}

// RiskStyle returns the accent style for a risk level.
func (t *Theme) RiskStyle(r model.Risk) *lipgloss.Style {
	switch r {
	case model.RiskHigh:
		return &t.RiskHigh
	case model.RiskMedium:
		return &t.RiskMedium
	case model.RiskLow:
		return &t.RiskLow
	default:
		return &t.MutedText
	}
}

// EdgeStyle returns the precomputed faint style for an edge color.
func (t *Theme) EdgeStyle(c lipgloss.AdaptiveColor) *lipgloss.Style {
	if s, ok := t.edgeStyles[c]; ok {
		return s
	}
	return &t.MutedText
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyeng-labs/skygraph/pkg/debug"
	"github.com/skyeng-labs/skygraph/pkg/model"
)

const (
	overlayMaxWidth = 44
	overlayMinWidth = 28
)

// overlayWidth returns the side panel width for the current terminal,
// leaving at least half the width for the scene.
func (m *Model) overlayWidth() int {
	w := m.width / 3
	if w > overlayMaxWidth {
		w = overlayMaxWidth
	}
	if w < overlayMinWidth {
		w = overlayMinWidth
	}
	if w > m.width/2 {
		w = m.width / 2
	}
	return w
}

// overlayHit reports whether a terminal cell lies on the open overlay.
// Everything over the panel is swallowed before scene hit-testing runs, so
// closing the panel can never register as a click on a node behind it.
func (m *Model) overlayHit(x, y int) bool {
	if m.selected == nil {
		return false
	}
	return x >= m.width-m.overlayWidth() && y >= headerRows && y < m.height-footerRows
}

// overlayCloseHit reports whether the cell is the close control. The whole
// top border row of the panel acts as the target; single-cell targets are
// hostile to terminal mice.
func (m *Model) overlayCloseHit(x, y int) bool {
	return m.overlayHit(x, y) && y == headerRows
}

// renderOverlay draws the detail panel for the selected node.
func (m *Model) renderOverlay(w, h int) string {
	n := m.selected
	r := m.theme.Renderer
	inner := w - 4 // border + padding

	title := r.NewStyle().Bold(true).Foreground(ColorPrimary).
		Render(truncate(n.Label, inner-4)) + "  " +
		m.theme.MutedText.Render("✕")

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(m.theme.MutedText.Render(strings.Repeat("─", inner)) + "\n")

	kv := func(k, v string) {
		if v == "" {
			return
		}
		b.WriteString(m.theme.MutedText.Render(k+" ") + v + "\n")
	}

	kv("kind  ", kindLabel(n.Kind))
	kv("status", m.statusBadge(n))
	kv("risk  ", m.riskBadge(n.Risk))
	if n.Page > 0 {
		kv("page  ", fmt.Sprintf("%d", n.Page))
	}
	if n.DocID > 0 {
		kv("doc   ", fmt.Sprintf("%d", n.DocID))
	}

	if n.Reasoning != "" {
		b.WriteString("\n")
		b.WriteString(m.renderMarkdown(n.Reasoning, inner))
	}
	if n.Evidence != "" {
		b.WriteString("\n" + m.theme.MutedText.Render("evidence") + "\n")
		b.WriteString(r.NewStyle().Italic(true).Width(inner).Render("“"+n.Evidence+"”") + "\n")
	}
	if n.Excerpt != "" {
		b.WriteString("\n" + m.theme.MutedText.Render("excerpt") + "\n")
		b.WriteString(r.NewStyle().Width(inner).Render(n.Excerpt) + "\n")
	}

	panel := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1).
		Width(w - 2).
		Height(h - 2).
		MaxHeight(h).
		Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Right, lipgloss.Top, panel)
}

func (m *Model) statusBadge(n *model.Node) string {
	if n.Kind == model.KindStandard {
		return m.theme.MutedText.Render("standard")
	}
	c := m.theme.StatusColor(n.Status)
	return m.theme.Renderer.NewStyle().Foreground(c).Bold(true).Render(statusLabel(n.Status))
}

func (m *Model) riskBadge(r model.Risk) string {
	label := riskLabel(r)
	if label == "" {
		return ""
	}
	return m.theme.RiskStyle(r).Render(label)
}

// renderMarkdown renders assessment reasoning through glamour, falling back
// to plain wrapped text when rendering fails.
func (m *Model) renderMarkdown(src string, width int) string {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		debug.Log("glamour renderer: %v", err)
		return m.theme.Renderer.NewStyle().Width(width).Render(src)
	}
	out, err := tr.Render(src)
	if err != nil {
		debug.Log("glamour render: %v", err)
		return m.theme.Renderer.NewStyle().Width(width).Render(src)
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// nodeDetails builds the plain-text details block used by clipboard copy.
func nodeDetails(n *model.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", n.Label, kindLabel(n.Kind))
	if n.Kind != model.KindStandard {
		fmt.Fprintf(&b, "status: %s\n", statusLabel(n.Status))
	}
	if n.Risk != model.RiskNone {
		fmt.Fprintf(&b, "risk: %s\n", riskLabel(n.Risk))
	}
	if n.Reasoning != "" {
		fmt.Fprintf(&b, "\n%s\n", n.Reasoning)
	}
	if n.Evidence != "" {
		fmt.Fprintf(&b, "\nevidence: %s\n", n.Evidence)
	}
	if n.Excerpt != "" {
		fmt.Fprintf(&b, "\nexcerpt: %s\n", n.Excerpt)
	}
	if n.Page > 0 {
		fmt.Fprintf(&b, "page %d", n.Page)
		if n.DocID > 0 {
			fmt.Fprintf(&b, " of document %d", n.DocID)
		}
		b.WriteString("\n")
	}
	return b.String()
}

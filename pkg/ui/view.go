package ui

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/skyeng-labs/skygraph/pkg/model"
)

// Node glyphs. Standards are visually heavier than requirements.
const (
	glyphStandard    = '◉'
	glyphRequirement = '●'
	glyphParticle    = '✦'
	glyphEdge        = '·'
)

// View renders one frame: header, scene (or placeholder), optional
// selection overlay, status bar.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}

	sceneW := m.width
	if m.selected != nil {
		sceneW -= m.overlayWidth()
	}
	sceneH := m.height - headerRows - footerRows
	if sceneW < 1 || sceneH < 1 {
		return ""
	}

	var body string
	switch {
	case m.loading && m.graph == nil:
		body = m.placeholder(sceneW, sceneH, m.spin.View()+" waiting for assessment data…")
	case m.loadErr != nil && m.graph == nil:
		body = m.placeholder(sceneW, sceneH,
			m.theme.Renderer.NewStyle().Foreground(ColorDanger).Render("load failed: "+m.loadErr.Error()))
	case m.graph == nil:
		body = m.placeholder(sceneW, sceneH, m.theme.MutedText.Render("no graph loaded — press r to load"))
	default:
		body = m.renderScene(sceneW, sceneH)
	}

	if m.selected != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderOverlay(m.overlayWidth(), sceneH))
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.viewHeader(), body, m.viewStatusBar())
}

func (m *Model) placeholder(w, h int, msg string) string {
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, msg)
}

func (m *Model) viewHeader() string {
	title := " skygraph "
	var info string
	if m.graph != nil {
		s := m.graph.Summarize()
		info = fmt.Sprintf("%d standards · %d requirements · %d✓ %d~ %d✗",
			s.Standards, s.Requirements, s.Compliant, s.Partial, s.NonCompliant+s.Unknown)
		if m.loading {
			info += "  " + m.spin.View()
		}
	}
	left := m.theme.Header.Render(title)
	right := m.theme.MutedText.Render(" " + info)
	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 0 {
		pad = 0
	}
	return left + right + m.theme.StatusBar.Render(spaces(pad))
}

func (m *Model) viewStatusBar() string {
	var hint string
	switch {
	case m.statusMsg != "":
		hint = m.statusMsg
	case m.ctrl.DragActive():
		hint = "dragging · release to drop"
	case m.selected != nil:
		hint = "esc close · y copy details · e snapshot · q quit"
	default:
		hint = "drag nodes · click for details · arrows orbit · +/- zoom · e snapshot · q quit"
	}
	if m.warnings > 0 {
		hint += fmt.Sprintf("  (%d payload warnings)", m.warnings)
	}
	return m.theme.StatusBar.Render(truncate(" "+hint, m.width))
}

// renderScene draws edges, flow particles, then nodes back to front so
// nearer nodes overwrite farther ones.
func (m *Model) renderScene(w, h int) string {
	c := NewCanvas(w, h)
	t := m.now

	for _, e := range m.graph.DrawableEdges() {
		from, okF := m.store.Get(e.From)
		to, okT := m.store.Get(e.To)
		if !okF || !okT {
			continue
		}
		color := m.theme.StatusColor(e.Status)
		style := m.theme.EdgeStyle(color)

		fx, fy, _, ok1 := m.camera.Project(from)
		tx, ty, _, ok2 := m.camera.Project(to)
		if ok1 && ok2 {
			c.Line(int(math.Round(fx)), int(math.Round(fy)),
				int(math.Round(tx)), int(math.Round(ty)), glyphEdge, style)
		}

		// Flow particle oscillating along the link.
		p := m.flow.At(t, from, to)
		if px, py, _, ok := m.camera.Project(p); ok {
			c.Set(int(math.Round(px)), int(math.Round(py)), glyphParticle, style)
		}
	}

	type drawNode struct {
		n     *model.Node
		x, y  int
		depth float64
	}
	draws := make([]drawNode, 0, len(m.graph.Nodes))
	for i := range m.graph.Nodes {
		n := &m.graph.Nodes[i]
		pos, ok := m.store.Get(n.ID)
		if !ok {
			continue
		}
		sx, sy, depth, ok := m.camera.Project(pos)
		if !ok {
			continue
		}
		draws = append(draws, drawNode{n: n, x: int(math.Round(sx)), y: int(math.Round(sy)), depth: depth})
	}
	// Far to near.
	sort.Slice(draws, func(i, j int) bool { return draws[i].depth > draws[j].depth })

	hovered := m.ctrl.Hovered()
	for _, d := range draws {
		glyph := glyphRequirement
		if d.n.Kind == model.KindStandard {
			glyph = glyphStandard
		}
		style := m.theme.NodeStyle(m.theme.NodeColor(d.n), m.pulseWeight(t, d.n.ID))
		c.Set(d.x, d.y, glyph, style)

		switch {
		case m.selected != nil && d.n.ID == m.selected.ID:
			c.Text(d.x+2, d.y, truncate(d.n.Label, 24), &m.theme.Selected)
		case d.n.ID == hovered:
			c.Text(d.x+2, d.y, truncate(d.n.Label, 24), &m.theme.Hovered)
		}
	}

	return c.String()
}

// pulseWeight buckets the continuous pulse scale into the three precomputed
// style weights (dim, normal, bright).
func (m *Model) pulseWeight(t float64, id string) int {
	s := m.pulse.Scale(t, id)
	a := m.pulse.Amplitude
	switch {
	case s < 1-a/3:
		return 0
	case s > 1+a/3:
		return 2
	default:
		return 1
	}
}

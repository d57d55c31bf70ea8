// Package export renders static snapshots (PNG or SVG) of a compliance
// graph scene, preserving whatever node positions the user dragged into
// place. Snapshots use a top-down orthographic view of the layout plane so
// they stay readable without camera context.
package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/skyeng-labs/skygraph/pkg/model"
)

// SceneSnapshotOptions controls snapshot export behaviour.
type SceneSnapshotOptions struct {
	Path      string                // output path; format inferred from extension when Format empty
	Format    string                // "svg" or "png" (case-insensitive); inferred from Path when empty
	Title     string                // optional title rendered in the summary block
	Graph     *model.Graph          // graph to render
	Positions map[string][3]float64 // current world positions, keyed by node id
}

// SaveSceneSnapshot renders the graph to opts.Path. Node positions come
// from the live scene, so a snapshot taken after dragging shows the
// arrangement the user built.
func SaveSceneSnapshot(opts SceneSnapshotOptions) error {
	if opts.Graph == nil || len(opts.Graph.Nodes) == 0 {
		return fmt.Errorf("no nodes to export")
	}
	if len(opts.Positions) == 0 {
		return fmt.Errorf("no node positions to export")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "png"
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path += ".png"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	layout := buildLayout(opts)

	switch format {
	case "svg":
		return renderSVG(opts.Path, layout)
	default:
		return renderPNG(opts.Path, layout)
	}
}

// --- layout computation ----------------------------------------------------

type plotNode struct {
	ID     string
	Label  string
	Kind   model.Kind
	Status model.Status
	X, Y   float64 // pixel coordinates
	R      float64 // marker radius
}

type plotEdge struct {
	From, To int // indexes into Nodes
	Status   model.Status
}

type plotLayout struct {
	Nodes   []plotNode
	Edges   []plotEdge
	Width   int
	Height  int
	Summary summaryInfo
}

type summaryInfo struct {
	Title        string
	Standards    int
	Requirements int
	Compliant    int
	Partial      int
	NonCompliant int
}

// buildLayout maps world X/Y onto pixels, fitting the drawing into a fixed
// canvas with padding. World Z is dropped: positions live on the Z=0 plane.
func buildLayout(opts SceneSnapshotOptions) plotLayout {
	const (
		canvasW      = 1100.0
		canvasH      = 800.0
		padding      = 60.0
		headerHeight = 90.0
		radiusStd    = 14.0
		radiusReq    = 9.0
	)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range opts.Positions {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX < 1e-9 {
		spanX = 1
	}
	if spanY < 1e-9 {
		spanY = 1
	}
	scale := math.Min(
		(canvasW-2*padding)/spanX,
		(canvasH-headerHeight-2*padding)/spanY,
	)

	toPixel := func(p [3]float64) (float64, float64) {
		x := padding + (p[0]-minX)*scale
		// World +Y is up; pixel +Y is down.
		y := headerHeight + padding + (maxY-p[1])*scale
		return x, y
	}

	g := opts.Graph
	idx := make(map[string]int, len(g.Nodes))
	nodes := make([]plotNode, 0, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		p, ok := opts.Positions[n.ID]
		if !ok {
			continue
		}
		x, y := toPixel(p)
		r := radiusReq
		if n.Kind == model.KindStandard {
			r = radiusStd
		}
		idx[n.ID] = len(nodes)
		nodes = append(nodes, plotNode{
			ID:     n.ID,
			Label:  truncateLabel(n.Label, 32),
			Kind:   n.Kind,
			Status: n.Status,
			X:      x,
			Y:      y,
			R:      r,
		})
	}

	var edges []plotEdge
	for _, e := range g.DrawableEdges() {
		fi, okF := idx[e.From]
		ti, okT := idx[e.To]
		if !okF || !okT {
			continue
		}
		edges = append(edges, plotEdge{From: fi, To: ti, Status: e.Status})
	}
	// Deterministic draw order.
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Compliance Graph"
	}
	s := g.Summarize()

	return plotLayout{
		Nodes:  nodes,
		Edges:  edges,
		Width:  int(canvasW),
		Height: int(canvasH),
		Summary: summaryInfo{
			Title:        title,
			Standards:    s.Standards,
			Requirements: s.Requirements,
			Compliant:    s.Compliant,
			Partial:      s.Partial,
			NonCompliant: s.NonCompliant + s.Unknown,
		},
	}
}

// --- rendering -------------------------------------------------------------

var (
	colorStandard  = color.RGBA{0x33, 0x66, 0xcc, 0xff}
	colorCompliant = color.RGBA{0x2e, 0x8b, 0x3a, 0xff}
	colorPartial   = color.RGBA{0xd9, 0x8e, 0x00, 0xff}
	colorNonComp   = color.RGBA{0xcc, 0x33, 0x33, 0xff}
	colorStroke    = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorText      = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle    = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorBackdrop  = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG  = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
)

// statusFill maps a verdict to its fill. Standard nodes bypass this and use
// the fixed standard blue; unknown and absent statuses render non-compliant.
func statusFill(s model.Status) color.RGBA {
	switch s {
	case model.StatusCompliant:
		return colorCompliant
	case model.StatusPartial:
		return colorPartial
	default:
		return colorNonComp
	}
}

func nodeFill(n plotNode) color.RGBA {
	if n.Kind == model.KindStandard {
		return colorStandard
	}
	return statusFill(n.Status)
}

func edgeStroke(s model.Status) color.RGBA {
	c := statusFill(s)
	c.A = 0xaa
	return c
}

func renderPNG(path string, layout plotLayout) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(layout.Width)-32, 58, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(layout.Summary.Title, 32, 38, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(summaryLine(layout.Summary), 32, 58, 0, 0.5)

	for _, e := range layout.Edges {
		from := layout.Nodes[e.From]
		to := layout.Nodes[e.To]
		dc.SetColor(edgeStroke(e.Status))
		dc.SetLineWidth(1.5)
		dc.DrawLine(from.X, from.Y, to.X, to.Y)
		dc.Stroke()
	}

	for _, n := range layout.Nodes {
		dc.SetColor(nodeFill(n))
		dc.DrawCircle(n.X, n.Y, n.R)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1)
		dc.DrawCircle(n.X, n.Y, n.R)
		dc.Stroke()

		if n.Kind == model.KindStandard {
			dc.SetColor(colorText)
			dc.DrawStringAnchored(n.Label, n.X, n.Y-n.R-8, 0.5, 0.5)
		}
	}

	return dc.SavePNG(path)
}

func renderSVG(path string, layout plotLayout) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return renderSVGToWriter(file, layout)
}

func renderSVGToWriter(w io.Writer, layout plotLayout) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, "fill:"+css(colorBackdrop))
	canvas.Roundrect(16, 16, layout.Width-32, 58, 10, 10, "fill:"+css(colorHeaderBG))
	canvas.Text(32, 42, layout.Summary.Title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 62, summaryLine(layout.Summary),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))

	for _, e := range layout.Edges {
		from := layout.Nodes[e.From]
		to := layout.Nodes[e.To]
		canvas.Line(int(from.X), int(from.Y), int(to.X), int(to.Y),
			fmt.Sprintf("stroke:%s;stroke-width:1.5;stroke-opacity:0.7", css(statusFill(e.Status))))
	}

	for _, n := range layout.Nodes {
		canvas.Circle(int(n.X), int(n.Y), int(n.R),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(nodeFill(n)), css(colorStroke)))
		if n.Kind == model.KindStandard {
			canvas.Text(int(n.X), int(n.Y-n.R-8), n.Label,
				fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;text-anchor:middle", css(colorText)))
		}
	}

	canvas.End()
	return nil
}

// --- helpers ---------------------------------------------------------------

func summaryLine(s summaryInfo) string {
	return fmt.Sprintf("standards: %d  requirements: %d  compliant: %d  partial: %d  non-compliant: %d",
		s.Standards, s.Requirements, s.Compliant, s.Partial, s.NonCompliant)
}

func truncateLabel(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

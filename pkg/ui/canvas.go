package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cell is one character of the scene raster. Styles are held by pointer so
// runs of identically-styled cells can be detected without comparing style
// contents; callers paint with the Theme's precomputed styles.
type cell struct {
	r     rune
	style *lipgloss.Style
}

// Canvas is a fixed-size cell raster the scene is painted into each frame.
// Later writes win, so callers paint back-to-front (edges, particles, then
// nodes sorted far-to-near).
type Canvas struct {
	w, h  int
	cells []cell
}

// NewCanvas allocates a raster of the given size.
func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Canvas{w: w, h: h, cells: make([]cell, w*h)}
}

// Width returns the raster width in cells.
func (c *Canvas) Width() int { return c.w }

// Height returns the raster height in cells.
func (c *Canvas) Height() int { return c.h }

// Set paints one cell. Out-of-bounds writes are dropped, which is what
// clips geometry leaving the viewport.
func (c *Canvas) Set(x, y int, r rune, style *lipgloss.Style) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, style: style}
}

// Text paints a horizontal string starting at (x, y), clipping at the edge.
func (c *Canvas) Text(x, y int, s string, style *lipgloss.Style) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, style)
	}
}

// Line paints a Bresenham segment between two cells.
func (c *Canvas) Line(x0, y0, x1, y1 int, r rune, style *lipgloss.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.Set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// At returns the rune at a cell, or ' ' when empty/out of bounds.
func (c *Canvas) At(x, y int) rune {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return ' '
	}
	cl := c.cells[y*c.w+x]
	if cl.style == nil && cl.r == 0 {
		return ' '
	}
	if cl.r == 0 {
		return ' '
	}
	return cl.r
}

// String renders the raster to a terminal string, styling runs of cells
// that share a style to keep the escape-sequence volume down.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.w*c.h + c.h)

	for y := 0; y < c.h; y++ {
		var run []rune
		var runStyle *lipgloss.Style

		flush := func() {
			if len(run) == 0 {
				return
			}
			if runStyle != nil {
				b.WriteString(runStyle.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			run = run[:0]
		}

		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			r := cl.r
			if r == 0 {
				r = ' '
			}
			if len(run) > 0 && cl.style != runStyle {
				flush()
			}
			runStyle = cl.style
			run = append(run, r)
		}
		flush()
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

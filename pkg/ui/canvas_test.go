package ui

import (
	"strings"
	"testing"
)

func TestCanvas_SetAndClip(t *testing.T) {
	c := NewCanvas(10, 4)
	c.Set(3, 1, 'x', nil)
	if got := c.At(3, 1); got != 'x' {
		t.Errorf("At(3,1) = %q", got)
	}

	// Out-of-bounds writes clip silently.
	c.Set(-1, 0, 'y', nil)
	c.Set(10, 0, 'y', nil)
	c.Set(0, 4, 'y', nil)
	if strings.ContainsRune(c.String(), 'y') {
		t.Error("out-of-bounds write leaked onto the canvas")
	}
}

func TestCanvas_Text(t *testing.T) {
	c := NewCanvas(8, 2)
	c.Text(5, 0, "hello", nil)
	// "he" visible, "llo" clipped.
	if c.At(5, 0) != 'h' || c.At(6, 0) != 'e' || c.At(7, 0) != 'l' {
		t.Errorf("row 0 = %q", c.String())
	}
}

func TestCanvas_LineEndpointsDrawn(t *testing.T) {
	c := NewCanvas(20, 10)
	c.Line(2, 2, 15, 7, '.', nil)
	if c.At(2, 2) != '.' || c.At(15, 7) != '.' {
		t.Error("line endpoints missing")
	}

	// Degenerate line is a single cell.
	c2 := NewCanvas(5, 5)
	c2.Line(3, 3, 3, 3, '#', nil)
	if c2.At(3, 3) != '#' {
		t.Error("zero-length line drew nothing")
	}
}

func TestCanvas_StringShape(t *testing.T) {
	c := NewCanvas(4, 3)
	lines := strings.Split(c.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, l := range lines {
		if l != "    " {
			t.Errorf("line %d = %q, want four spaces", i, l)
		}
	}
}

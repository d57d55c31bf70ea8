package layout

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/skyeng-labs/skygraph/pkg/model"
)

func testGraph(standards, requirements int) *model.Graph {
	var nodes []model.Node
	for i := 0; i < standards; i++ {
		nodes = append(nodes, model.Node{
			ID:   "reg_" + string(rune('a'+i)),
			Kind: model.KindStandard,
		})
	}
	for i := 0; i < requirements; i++ {
		nodes = append(nodes, model.Node{
			ID:   "cust_" + string(rune('a'+i)),
			Kind: model.KindRequirement,
		})
	}
	return model.NewGraph(nodes, nil)
}

func TestCompute_StandardsEvenlySpacedOnCircle(t *testing.T) {
	e := New()
	g := testGraph(3, 0)
	pos := e.Compute(g)

	wantAngles := []float64{0, 2 * math.Pi / 3, 4 * math.Pi / 3}
	for i, id := range []string{"reg_a", "reg_b", "reg_c"} {
		p, ok := pos[id]
		if !ok {
			t.Fatalf("no position for %s", id)
		}
		wantX := DefaultStandardRadius * math.Cos(wantAngles[i])
		wantY := DefaultStandardRadius * math.Sin(wantAngles[i])
		if math.Abs(p.X-wantX) > 1e-9 || math.Abs(p.Y-wantY) > 1e-9 {
			t.Errorf("%s at (%.4f, %.4f), want (%.4f, %.4f)", id, p.X, p.Y, wantX, wantY)
		}
		if p.Z != 0 {
			t.Errorf("%s Z = %v, want 0", id, p.Z)
		}
	}
}

func TestCompute_StandardIndexIgnoresInterleaving(t *testing.T) {
	// Standards keep their circle slots no matter how requirement nodes
	// interleave in the node list.
	nodes := []model.Node{
		{ID: "cust_1", Kind: model.KindRequirement},
		{ID: "reg_1", Kind: model.KindStandard},
		{ID: "cust_2", Kind: model.KindRequirement},
		{ID: "reg_2", Kind: model.KindStandard},
	}
	pos := New().Compute(model.NewGraph(nodes, nil))

	p1 := pos["reg_1"]
	if math.Abs(p1.X-DefaultStandardRadius) > 1e-9 || math.Abs(p1.Y) > 1e-9 {
		t.Errorf("reg_1 at (%.4f, %.4f), want (%.1f, 0)", p1.X, p1.Y, DefaultStandardRadius)
	}
	p2 := pos["reg_2"]
	if math.Abs(p2.X+DefaultStandardRadius) > 1e-9 || math.Abs(p2.Y) > 1e-9 {
		t.Errorf("reg_2 at (%.4f, %.4f), want (-%.1f, 0)", p2.X, p2.Y, DefaultStandardRadius)
	}
}

func TestCompute_RequirementsInsideScatterSquare(t *testing.T) {
	e := New()
	g := testGraph(2, 20)
	pos := e.Compute(g)

	for id, p := range pos {
		n := g.NodeByID(id)
		if n.Kind != model.KindRequirement {
			continue
		}
		if math.Abs(p.X) > DefaultScatterHalfWidth || math.Abs(p.Y) > DefaultScatterHalfWidth {
			t.Errorf("%s at (%.4f, %.4f) outside ±%.1f scatter square", id, p.X, p.Y, DefaultScatterHalfWidth)
		}
		if p.Z != 0 {
			t.Errorf("%s Z = %v, want 0", id, p.Z)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	e := New()
	g := testGraph(3, 10)
	a := e.Compute(g)
	b := e.Compute(g)
	if len(a) != len(b) {
		t.Fatalf("runs disagree on node count: %d vs %d", len(a), len(b))
	}
	for id, pa := range a {
		if pb := b[id]; pa != pb {
			t.Errorf("%s moved between runs: %v vs %v", id, pa, pb)
		}
	}
}

func TestCompute_EmptyAndNoStandards(t *testing.T) {
	e := New()

	if got := e.Compute(model.NewGraph(nil, nil)); len(got) != 0 {
		t.Errorf("empty graph produced %d positions", len(got))
	}

	// Requirements only: no division by zero, everything scattered.
	pos := e.Compute(testGraph(0, 5))
	if len(pos) != 5 {
		t.Fatalf("got %d positions, want 5", len(pos))
	}
	for id, p := range pos {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Errorf("%s has NaN coordinates", id)
		}
	}
}

func TestCompute_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		standards := rapid.IntRange(0, 12).Draw(t, "standards")
		requirements := rapid.IntRange(0, 12).Draw(t, "requirements")
		g := testGraph(standards, requirements)
		pos := New().Compute(g)

		if len(pos) != standards+requirements {
			t.Fatalf("got %d positions for %d nodes", len(pos), standards+requirements)
		}
		for id, p := range pos {
			if p.Z != 0 {
				t.Fatalf("%s left the layout plane: Z=%v", id, p.Z)
			}
			n := g.NodeByID(id)
			if n.Kind == model.KindStandard {
				r := math.Hypot(p.X, p.Y)
				if math.Abs(r-DefaultStandardRadius) > 1e-9 {
					t.Fatalf("%s at radius %.6f, want %.1f", id, r, DefaultStandardRadius)
				}
			}
		}
	})
}

// Package layout computes the initial world position for every node in a
// compliance graph. The arrangement is intentionally non-physical: standards
// sit evenly on a circle, requirements scatter inside a square, and users
// drag nodes apart from there. No force simulation, no collision handling.
package layout

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/skyeng-labs/skygraph/pkg/model"
)

// Presentation tuning values. They have no semantic meaning beyond "reads
// well at default zoom"; keep them named rather than inlined.
const (
	// DefaultStandardRadius is the circle radius for standard nodes.
	DefaultStandardRadius = 10.0
	// DefaultScatterHalfWidth is the half-width of the square requirement
	// nodes scatter inside.
	DefaultScatterHalfWidth = 8.0
	// scatterSeed keeps the requirement scatter reproducible run-to-run.
	scatterSeed = 0x5eed
)

// Engine places nodes. The zero value is not usable; call New.
type Engine struct {
	StandardRadius   float64
	ScatterHalfWidth float64
}

// New returns an Engine with the default tuning values.
func New() Engine {
	return Engine{
		StandardRadius:   DefaultStandardRadius,
		ScatterHalfWidth: DefaultScatterHalfWidth,
	}
}

// Compute returns one position per node id, all in the Z=0 plane.
//
// The i-th standard node (0-indexed among standards, regardless of how the
// kinds interleave in g.Nodes) lands at angle 2π·i/countStandard on the
// circle. Requirement nodes draw uniform coordinates from a fixed-seed PRNG,
// so the same graph always lays out the same way.
func (e Engine) Compute(g *model.Graph) map[string]r3.Vec {
	positions := make(map[string]r3.Vec, len(g.Nodes))
	if len(g.Nodes) == 0 {
		return positions
	}

	countStandard := g.CountKind(model.KindStandard)

	rng := rand.New(rand.NewSource(scatterSeed))
	stdIdx := 0
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if _, dup := positions[n.ID]; dup {
			continue
		}
		switch n.Kind {
		case model.KindStandard:
			angle := 2 * math.Pi * float64(stdIdx) / float64(countStandard)
			positions[n.ID] = r3.Vec{
				X: e.StandardRadius * math.Cos(angle),
				Y: e.StandardRadius * math.Sin(angle),
			}
			stdIdx++
		default:
			positions[n.ID] = r3.Vec{
				X: (rng.Float64()*2 - 1) * e.ScatterHalfWidth,
				Y: (rng.Float64()*2 - 1) * e.ScatterHalfWidth,
			}
		}
	}
	return positions
}

package scene

import (
	"hash/fnv"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Animation laws are pure functions of elapsed time so they can be sampled
// at fixed t in tests without driving a real frame loop. No accumulated
// state lives here.

// Pulse evaluates the node glow law 1 + A·sin(ω·t + φ(id)) with per-id phase
// offsets so sibling nodes visibly desynchronize. The law is the same for
// standard and requirement nodes; only the base glyph size differs.
type Pulse struct {
	Amplitude float64
	Frequency float64
}

// DefaultPulse returns the stock pulse tuning.
func DefaultPulse() Pulse {
	return Pulse{Amplitude: DefaultPulseAmplitude, Frequency: DefaultPulseFrequency}
}

// Scale returns the glow scale factor for node id at elapsed time t seconds.
func (p Pulse) Scale(t float64, id string) float64 {
	return 1 + p.Amplitude*math.Sin(p.Frequency*t+phase(id))
}

// phase derives a stable [0, 2π) offset from a node id.
func phase(id string) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return float64(h.Sum32()%3600) / 3600 * 2 * math.Pi
}

// Flow evaluates the edge particle law: the particle oscillates back and
// forth along the segment, lerp(from, to, (sin(ω·t)+1)/2), rather than
// cycling one-way. Endpoints are re-read from the position store every
// frame, so dragging an endpoint bends the animated segment immediately.
type Flow struct {
	Frequency float64
}

// DefaultFlow returns the stock flow tuning.
func DefaultFlow() Flow {
	return Flow{Frequency: DefaultFlowFrequency}
}

// At returns the particle position along from→to at elapsed time t seconds.
func (f Flow) At(t float64, from, to r3.Vec) r3.Vec {
	s := (math.Sin(f.Frequency*t) + 1) / 2
	return r3.Add(from, r3.Scale(s, r3.Sub(to, from)))
}

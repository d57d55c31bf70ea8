package scene

// Presentation tuning values carried over from the original viewer. None of
// them has documented rationale beyond looking right at default zoom; treat
// them as opaque constants and override through pkg/config when needed.
const (
	// DefaultPulseAmplitude is A in the node glow law 1 + A·sin(ω·t + φ).
	DefaultPulseAmplitude = 0.3
	// DefaultPulseFrequency is ω in the node glow law, radians per second.
	DefaultPulseFrequency = 2.0
	// DefaultFlowFrequency is ω for the edge flow particle oscillation.
	DefaultFlowFrequency = 1.5
	// DefaultClickThreshold is the maximum pointer displacement, in screen
	// cells, still classified as a click. The original used ~5 CSS pixels;
	// two terminal cells is the closest equivalent.
	DefaultClickThreshold = 2.0
	// DefaultHitRadius is the screen-space pick radius around a node's
	// projected center, in cells.
	DefaultHitRadius = 2.0
	// DefaultFrameRate is the animation tick rate in frames per second.
	DefaultFrameRate = 30
)

package synth

// smoothingCoeff is the per-sample rate at which a layer's internal
// copy of a parameter approaches its latest published target. Small
// enough to avoid audible stepping when bundles change between buffers.
const smoothingCoeff = 0.01

// Layer is the closed set of per-sample generators: Drone, Sparkle,
// Texture. Each consumes the latest parameter bundle and produces one
// mono sample, carrying its own oscillator/envelope/smoothing state
// from sample to sample.
//
// Process is called from the audio thread only. Implementations must
// not block, allocate, or emit non-finite values.
type Layer interface {
	Process(p Params) float64
}

// smooth moves current one exponential step toward target.
func smooth(current *float64, target float64) {
	*current += (target - *current) * smoothingCoeff
}

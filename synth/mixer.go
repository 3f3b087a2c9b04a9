package synth

import "math"

// Per-layer gains, tuned so combined output sits near 0.8 before the
// master gain and limiter.
const (
	droneLaneGain   = 0.3
	textureLaneGain = 0.4
	sparkleLaneGain = 0.6
)

// Soft-knee limiter: excess above the knee compresses 2:1 before the
// hard clip at full scale.
const (
	limiterKnee  = 0.8
	limiterRatio = 0.5
)

type lane struct {
	layer Layer
	gain  float64
}

// Mixer owns the three layers and folds them into one mono sample per
// call. Layer faults are contained: a non-finite contribution is
// dropped from the sum for that sample instead of propagating.
type Mixer struct {
	lanes []lane
}

// NewMixer builds the drone/texture/sparkle stack for the given sample
// rate. The seed keys the deterministic noise sources; the two noise
// layers get decorrelated streams derived from it.
func NewMixer(sampleRate float64, noiseSeed uint64) *Mixer {
	return &Mixer{
		lanes: []lane{
			{layer: NewDrone(sampleRate), gain: droneLaneGain},
			{layer: NewTexture(sampleRate, noiseSeed), gain: textureLaneGain},
			{layer: NewSparkle(sampleRate, noiseSeed*0x5deece66d+0xb), gain: sparkleLaneGain},
		},
	}
}

// Sample renders one mono sample from the given bundle. Always returns
// a finite value in [-1, 1].
func (m *Mixer) Sample(p Params) float64 {
	mixed := 0.0
	for i := range m.lanes {
		s := m.lanes[i].layer.Process(p)
		if math.IsNaN(s) || math.IsInf(s, 0) {
			continue
		}
		mixed += s * m.lanes[i].gain
	}

	mixed *= math.Min(p.MasterGain, 1.0)

	if abs := math.Abs(mixed); abs > limiterKnee {
		compressed := (abs - limiterKnee) * limiterRatio
		mixed = math.Copysign(limiterKnee+compressed, mixed)
	}

	return clamp(mixed, -1.0, 1.0)
}

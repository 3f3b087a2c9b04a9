package synth

import "math"

// Texture LFO tuning: the amplitude wobble runs between these rates,
// scaled by energy.
const (
	textureLFOMinHz = 0.01
	textureLFOMaxHz = 0.1
	textureGain     = 0.6
)

// Texture is the continuous noise bed: deterministic noise roughened
// by a tension-dependent odd-order nonlinearity, darkened by a
// warmth-controlled one-pole low-pass, and breathed by a slow triangle
// LFO whose rate follows energy.
type Texture struct {
	sampleRate float64
	noise      *noiseSource

	brightness float64
	level      float64 // smoothed density-derived gain
	energy     float64

	lp       float64 // low-pass state
	lfoPhase float64
}

func NewTexture(sampleRate float64, noiseSeed uint64) *Texture {
	return &Texture{
		sampleRate: sampleRate,
		noise:      newNoiseSource(noiseSeed),
		brightness: 0.5,
	}
}

func (t *Texture) Process(p Params) float64 {
	smooth(&t.brightness, p.Brightness)
	smooth(&t.level, p.Texture)

	// Master gain carries energy (see ParamsFrom): recover it to pace
	// the LFO. Detune ratio likewise carries tension for roughness.
	smooth(&t.energy, clamp01(p.MasterGain*5.0))
	tension := clamp01((p.DetuneRatio - 1.0) * 100.0)

	// Odd-order roughness: x + k*x^3, renormalized so the shaper
	// never exceeds unity on its own.
	x := t.noise.next()
	shaped := (x + tension*x*x*x) / (1.0 + tension)

	// Warmth darkens: brightness is the inverse of warmth, so a low
	// brightness means a sluggish filter and a darker bed.
	t.lp += (shaped - t.lp) * (0.02 + 0.3*t.brightness)

	lfoHz := textureLFOMinHz + (textureLFOMaxHz-textureLFOMinHz)*t.energy
	t.lfoPhase += lfoHz / t.sampleRate
	if t.lfoPhase >= 1.0 {
		t.lfoPhase -= 1.0
	}
	tri := 1.0 - math.Abs(2.0*t.lfoPhase-1.0) // 0..1..0 triangle
	mod := 0.5 + 0.5*tri

	out := t.lp * mod * t.level * textureGain

	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0.0
	}
	return out
}

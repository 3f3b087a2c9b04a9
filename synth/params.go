// Package synth turns world snapshots into audio samples: the
// parameter bundle and its lock-free shared cell, the three synthesis
// layers, and the mixer/limiter that feeds the output device.
//
// Everything on the Process/Sample path is allocation-free and
// clamp-or-contain on faults; it runs inside the audio callback.
package synth

import (
	"github.com/veiltone/ambientd/world"
)

// Params is the flat bundle of synthesis-facing scalars derived from a
// world snapshot. Plain data, value semantics.
type Params struct {
	MasterGain     float64 `json:"master_gain"`
	BaseFreqHz     float64 `json:"base_freq_hz"`
	DetuneRatio    float64 `json:"detune_ratio"`
	Brightness     float64 `json:"brightness"`
	Motion         float64 `json:"motion"`
	Texture        float64 `json:"texture"`
	SparkleImpulse float64 `json:"sparkle_impulse"`
}

// DefaultParams is what the audio thread hears before the first
// publish: quiet, neutral, no detune, no sparkle.
func DefaultParams() Params {
	return Params{
		MasterGain:  0.1,
		BaseFreqHz:  440.0,
		DetuneRatio: 1.0,
		Brightness:  0.5,
	}
}

// ParamsFrom maps a snapshot to synthesis parameters. Pure and
// stateless: identical snapshots yield identical bundles, safe to call
// from any goroutine.
func ParamsFrom(snap world.Snapshot) Params {
	return Params{
		MasterGain:     clamp01(snap.Energy * 0.2),
		BaseFreqHz:     clamp(80.0+snap.Warmth*160.0, 80.0, 240.0),
		DetuneRatio:    clamp(1.0+snap.Tension*0.01, 0.5, 2.0),
		Brightness:     clamp01(1.0 - snap.Warmth*0.5),
		Motion:         clamp01(snap.Rhythm * 0.5),
		Texture:        clamp01(snap.Density * 0.3),
		SparkleImpulse: snap.SparkleImpulse, // already >= 0, unclamped
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

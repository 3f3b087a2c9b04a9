package synth

import "math"

// Drone is the harmonic bed: two sine oscillators at the base
// frequency and its detuned partner, averaged and scaled by the
// smoothed master gain.
//
// Phase accumulators count samples and wrap at sampleRate/freq rather
// than accumulating radians, which bounds drift over long runs.
type Drone struct {
	sampleRate float64

	phaseA float64
	phaseB float64

	gain   float64
	freq   float64
	detune float64
}

func NewDrone(sampleRate float64) *Drone {
	return &Drone{
		sampleRate: sampleRate,
		freq:       440.0,
		detune:     1.0,
	}
}

func (d *Drone) Process(p Params) float64 {
	smooth(&d.gain, p.MasterGain)
	smooth(&d.freq, p.BaseFreqHz)
	smooth(&d.detune, p.DetuneRatio)

	freqA := d.freq
	freqB := d.freq * d.detune

	sampleA := math.Sin(d.phaseA * freqA * 2.0 * math.Pi / d.sampleRate)
	sampleB := math.Sin(d.phaseB * freqB * 2.0 * math.Pi / d.sampleRate)

	out := (sampleA + sampleB) * 0.5 * d.gain

	d.phaseA++
	if d.phaseA >= d.sampleRate/freqA {
		d.phaseA -= d.sampleRate / freqA
	}
	d.phaseB++
	if d.phaseB >= d.sampleRate/freqB {
		d.phaseB -= d.sampleRate / freqB
	}

	return out
}

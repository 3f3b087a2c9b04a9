package synth

import (
	"math"
	"sync/atomic"
)

// SharedParams is the one cell shared between the control domain and
// the audio thread: one low-rate writer, one high-rate reader.
//
// Thread-Safety:
//   - Publish: lock-free atomic store per field, single writer
//   - Load: lock-free atomic load per field, no blocking, no allocation
//   - Each field is individually torn-free; the bundle as a whole is
//     only eventually consistent. A Load that races a Publish may mix
//     fields from two bundles, never a half-written field.
type SharedParams struct {
	masterGain     atomic.Uint64
	baseFreqHz     atomic.Uint64
	detuneRatio    atomic.Uint64
	brightness     atomic.Uint64
	motion         atomic.Uint64
	texture        atomic.Uint64
	sparkleImpulse atomic.Uint64
}

// NewSharedParams seeds the cell so the audio thread reads a sane
// bundle before the first publish.
func NewSharedParams(initial Params) *SharedParams {
	p := &SharedParams{}
	p.Publish(initial)
	return p
}

// Publish stores the bundle field by field. Non-blocking; safe to call
// from the control goroutine at any rate.
func (p *SharedParams) Publish(v Params) {
	p.masterGain.Store(math.Float64bits(v.MasterGain))
	p.baseFreqHz.Store(math.Float64bits(v.BaseFreqHz))
	p.detuneRatio.Store(math.Float64bits(v.DetuneRatio))
	p.brightness.Store(math.Float64bits(v.Brightness))
	p.motion.Store(math.Float64bits(v.Motion))
	p.texture.Store(math.Float64bits(v.Texture))
	p.sparkleImpulse.Store(math.Float64bits(v.SparkleImpulse))
}

// Load returns the most recently fully-written value per field.
// Non-blocking; called once per output buffer by the audio thread.
func (p *SharedParams) Load() Params {
	return Params{
		MasterGain:     math.Float64frombits(p.masterGain.Load()),
		BaseFreqHz:     math.Float64frombits(p.baseFreqHz.Load()),
		DetuneRatio:    math.Float64frombits(p.detuneRatio.Load()),
		Brightness:     math.Float64frombits(p.brightness.Load()),
		Motion:         math.Float64frombits(p.motion.Load()),
		Texture:        math.Float64frombits(p.texture.Load()),
		SparkleImpulse: math.Float64frombits(p.sparkleImpulse.Load()),
	}
}

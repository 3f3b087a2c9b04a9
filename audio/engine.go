package audio

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/veiltone/ambientd/synth"
)

// Engine renders the soundscape on demand from the device. The render
// methods are the audio callback body: they read the shared bundle once
// per buffer, drive the mixer per sample, and never block, allocate, or
// panic. Any non-finite mixed sample degrades to silence.
type Engine struct {
	config *Config
	params *synth.SharedParams
	mixer  *synth.Mixer

	backend backend
	running atomic.Bool
	silent  atomic.Bool
}

// NewEngine builds the layer stack for the configured sample rate.
// The engine is inert until Start.
func NewEngine(cfg *Config, params *synth.SharedParams) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{
		config: cfg,
		params: params,
		mixer:  synth.NewMixer(float64(cfg.SampleRate), cfg.NoiseSeed),
	}
}

// Start builds the configured backend and begins playback. On failure
// the engine flips to silent mode, releases the running flag so a
// retry is possible, and returns the error; callers log it and carry
// on, the control path does not depend on audio.
func (e *Engine) Start() error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	b, err := newBackend(e.config)
	if err != nil {
		e.silent.Store(true)
		e.running.Store(false)
		return fmt.Errorf("selecting backend %q: %w", e.config.Backend, err)
	}
	if b == nil {
		// BackendNone: stay running, render nothing.
		e.silent.Store(true)
		return nil
	}

	if err := b.start(e); err != nil {
		e.silent.Store(true)
		e.running.Store(false)
		return fmt.Errorf("starting backend %q: %w", e.config.Backend, err)
	}

	e.backend = b
	return nil
}

// Stop tears down the output stream. Idempotent; device resources are
// released on every exit path.
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	if e.backend != nil {
		e.backend.stop()
		e.backend = nil
	}
	e.silent.Store(false)
}

// Silent reports whether the engine is running without a device.
func (e *Engine) Silent() bool {
	return e.silent.Load()
}

// Config returns the stream configuration the engine was built with.
func (e *Engine) Config() *Config {
	return e.config
}

// Render fills dst with interleaved PCM frames in the configured
// format and channel count. This is the oto callback body.
func (e *Engine) Render(dst []byte) {
	p := e.params.Load()
	frame := e.config.Format.BytesPerSample() * e.config.Channels

	i := 0
	for ; i+frame <= len(dst); i += frame {
		e.config.Format.putFrame(dst[i:], e.sample(p), e.config.Channels)
	}
	for ; i < len(dst); i++ {
		dst[i] = 0
	}
}

// RenderStereo fills a block of stereo float frames, the same mono mix
// in both channels. This is the beep streamer body.
func (e *Engine) RenderStereo(samples [][2]float64) {
	p := e.params.Load()
	for i := range samples {
		s := e.sample(p)
		samples[i][0] = s
		samples[i][1] = s
	}
}

// RenderChannels fills non-interleaved float32 channel buffers, as
// PortAudio delivers them.
func (e *Engine) RenderChannels(out [][]float32) {
	if len(out) == 0 {
		return
	}
	p := e.params.Load()
	for i := range out[0] {
		s := float32(e.sample(p))
		for c := range out {
			out[c][i] = s
		}
	}
}

// sample renders one mono sample, containing any numeric fault as
// silence rather than letting it reach the device.
func (e *Engine) sample(p synth.Params) float64 {
	s := e.mixer.Sample(p)
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return s
}

// newBackend maps the configured kind to an implementation. Returns
// (nil, nil) for BackendNone.
func newBackend(cfg *Config) (backend, error) {
	switch cfg.Backend {
	case BackendOto:
		return newOtoBackend(cfg)
	case BackendSpeaker:
		return newSpeakerBackend(cfg), nil
	case BackendPortAudio:
		return newPortAudioBackend(cfg)
	case BackendNone:
		return nil, nil
	default:
		return nil, ErrUnknownBackend
	}
}

// Package audio owns the output stream lifetime: it selects a backend,
// hands the device a pull callback, and renders the synth mixer into
// whatever buffer the device asks for. Audio is best-effort: if no
// backend can start, the engine runs silent and the rest of the system
// is unaffected.
package audio

import "errors"

// BackendKind names an output backend implementation
type BackendKind string

const (
	// BackendOto drives the platform mixer through oto's pull reader;
	// the default, and the only path with explicit PCM format control
	BackendOto BackendKind = "oto"

	// BackendSpeaker drives the beep speaker with a Streamer; stereo
	// float, format conversion handled downstream
	BackendSpeaker BackendKind = "speaker"

	// BackendPortAudio uses PortAudio via cgo; only available when the
	// binary is built with the portaudio tag
	BackendPortAudio BackendKind = "portaudio"

	// BackendNone renders nothing; used headless and in tests
	BackendNone BackendKind = "none"
)

// Sentinel errors
var (
	ErrUnknownBackend     = errors.New("unknown audio backend")
	ErrBackendUnavailable = errors.New("audio backend not available in this build")
	ErrAlreadyRunning     = errors.New("audio engine already running")
)

// backend is the closed set of device glues. start hooks the engine's
// render methods into the device's pull mechanism; stop tears the
// stream down. Both run on the control side, never the audio thread.
type backend interface {
	start(e *Engine) error
	stop()
}

//go:build !portaudio

package audio

// Without the portaudio tag the backend is absent; selecting it is a
// configuration error, reported once at startup like any other device
// failure.
func newPortAudioBackend(*Config) (backend, error) {
	return nil, ErrBackendUnavailable
}

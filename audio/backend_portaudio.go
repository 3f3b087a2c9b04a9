//go:build portaudio

package audio

import (
	"github.com/gordonklaus/portaudio"
)

const portAudioFrames = 1024

// portAudioBackend plays through PortAudio's default output device.
// Requires cgo and the portaudio build tag.
type portAudioBackend struct {
	cfg    *Config
	stream *portaudio.Stream
}

func newPortAudioBackend(cfg *Config) (backend, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	return &portAudioBackend{cfg: cfg}, nil
}

func (b *portAudioBackend) start(e *Engine) error {
	stream, err := portaudio.OpenDefaultStream(
		0, b.cfg.Channels,
		float64(b.cfg.SampleRate), portAudioFrames,
		func(out [][]float32) {
			e.RenderChannels(out)
		},
	)
	if err != nil {
		portaudio.Terminate()
		return err
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	b.stream = stream
	return nil
}

func (b *portAudioBackend) stop() {
	if b.stream != nil {
		b.stream.Stop()
		b.stream.Close()
		b.stream = nil
	}
	portaudio.Terminate()
}

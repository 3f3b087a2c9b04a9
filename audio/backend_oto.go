package audio

import (
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// otoBackend plays through the oto context. oto pulls PCM bytes from
// an io.Reader on its own mixer thread; the reader delegates straight
// to Engine.Render, so the read body inherits the real-time contract.
type otoBackend struct {
	ctx    *oto.Context
	player *oto.Player
	mutex  sync.Mutex
}

func newOtoBackend(cfg *Config) (*otoBackend, error) {
	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       otoFormat(cfg.Format),
		BufferSize:   50 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &otoBackend{ctx: ctx}, nil
}

func otoFormat(f Format) oto.Format {
	if f == FormatInt16LE {
		return oto.FormatSignedInt16LE
	}
	return oto.FormatFloat32LE
}

func (b *otoBackend) start(e *Engine) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.player = b.ctx.NewPlayer(&pcmReader{engine: e})
	b.player.Play()
	return nil
}

func (b *otoBackend) stop() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player != nil {
		b.player.Close()
		b.player = nil
	}
}

// pcmReader adapts Engine.Render to the io.Reader oto pulls from.
// Never returns an error or a short read; silence is all zeroes.
type pcmReader struct {
	engine *Engine
}

func (r *pcmReader) Read(p []byte) (int, error) {
	r.engine.Render(p)
	return len(p), nil
}

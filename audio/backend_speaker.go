package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// speakerBackend plays through the beep speaker. The speaker owns the
// device and pulls stereo float frames from a Streamer; the streamer
// delegates to Engine.RenderStereo. Channel count and sample format on
// the wire are the speaker's concern on this path.
type speakerBackend struct {
	cfg      *Config
	streamer *engineStreamer
}

func newSpeakerBackend(cfg *Config) *speakerBackend {
	return &speakerBackend{cfg: cfg}
}

func (b *speakerBackend) start(e *Engine) error {
	sr := beep.SampleRate(b.cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(50*time.Millisecond)); err != nil {
		return err
	}

	b.streamer = &engineStreamer{engine: e}
	speaker.Play(b.streamer)
	return nil
}

func (b *speakerBackend) stop() {
	speaker.Clear()
}

// engineStreamer is an endless beep.Streamer over the mixer.
type engineStreamer struct {
	engine *Engine
}

func (s *engineStreamer) Stream(samples [][2]float64) (int, bool) {
	s.engine.RenderStereo(samples)
	return len(samples), true
}

func (s *engineStreamer) Err() error { return nil }

package audio

import (
	"os"
	"strconv"
)

// Config describes the output stream the engine asks its backend for.
type Config struct {
	Backend    BackendKind
	SampleRate int
	Channels   int
	Format     Format

	// NoiseSeed keys the deterministic noise sources in the synthesis
	// layers. Any fixed value gives a repeatable texture character.
	NoiseSeed uint64
}

// DefaultConfig returns the production defaults: oto backend, 48 kHz
// stereo float32.
func DefaultConfig() *Config {
	return &Config{
		Backend:    BackendOto,
		SampleRate: 48000,
		Channels:   2,
		Format:     FormatFloat32LE,
		NoiseSeed:  1,
	}
}

// LoadConfig reads configuration from environment variables, falling
// back to defaults for anything unset or unparsable.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if backend := os.Getenv("AMBIENTD_AUDIO_BACKEND"); backend != "" {
		switch BackendKind(backend) {
		case BackendOto, BackendSpeaker, BackendPortAudio, BackendNone:
			cfg.Backend = BackendKind(backend)
		}
	}

	if rate := os.Getenv("AMBIENTD_SAMPLE_RATE"); rate != "" {
		if val, err := strconv.Atoi(rate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if channels := os.Getenv("AMBIENTD_AUDIO_CHANNELS"); channels != "" {
		if val, err := strconv.Atoi(channels); err == nil && val >= 1 && val <= 8 {
			cfg.Channels = val
		}
	}

	if format := os.Getenv("AMBIENTD_AUDIO_FORMAT"); format != "" {
		switch format {
		case "float32":
			cfg.Format = FormatFloat32LE
		case "int16":
			cfg.Format = FormatInt16LE
		}
	}

	if seed := os.Getenv("AMBIENTD_SEED"); seed != "" {
		if val, err := strconv.ParseUint(seed, 10, 64); err == nil {
			cfg.NoiseSeed = val
		}
	}

	return cfg
}

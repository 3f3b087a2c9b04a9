package audio

import (
	"encoding/binary"
	"math"
)

// Format selects the wire sample encoding handed to the device.
type Format int

const (
	FormatFloat32LE Format = iota
	FormatInt16LE
)

func (f Format) String() string {
	switch f {
	case FormatFloat32LE:
		return "float32"
	case FormatInt16LE:
		return "int16"
	}
	return "unknown"
}

// BytesPerSample returns the encoded width of one sample.
func (f Format) BytesPerSample() int {
	switch f {
	case FormatInt16LE:
		return 2
	default:
		return 4
	}
}

// putFrame fans one mono sample out across channels into dst, which
// must hold at least channels*BytesPerSample bytes. Returns bytes
// written. The int16 path rescales the [-1,1] float domain to full
// scale, saturating at the rails.
func (f Format) putFrame(dst []byte, sample float64, channels int) int {
	switch f {
	case FormatInt16LE:
		v := int16(math.Round(clampUnit(sample) * 32767.0))
		for c := 0; c < channels; c++ {
			binary.LittleEndian.PutUint16(dst[c*2:], uint16(v))
		}
		return channels * 2
	default:
		bits := math.Float32bits(float32(sample))
		for c := 0; c < channels; c++ {
			binary.LittleEndian.PutUint32(dst[c*4:], bits)
		}
		return channels * 4
	}
}

func clampUnit(v float64) float64 {
	if v < -1.0 {
		return -1.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

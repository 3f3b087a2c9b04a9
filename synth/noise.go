package synth

// noiseSource is a xorshift64 generator for the audio path: fixed
// sequence per seed, no locks, no allocation. math/rand is avoided
// here so layers stay self-contained on the real-time thread.
type noiseSource struct {
	state uint64
}

func newNoiseSource(seed uint64) *noiseSource {
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	return &noiseSource{state: seed}
}

// next returns a uniform sample in [-1, 1).
func (n *noiseSource) next() float64 {
	n.state ^= n.state << 13
	n.state ^= n.state >> 7
	n.state ^= n.state << 17
	return float64(n.state>>11)/float64(1<<52) - 1.0
}

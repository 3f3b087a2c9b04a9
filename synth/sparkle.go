package synth

import "math"

// Sparkle envelope tuning
const (
	sparkleThreshold = 0.002 // impulse level that arms a burst
	sparkleMinDur    = 0.05  // seconds, at full motion
	sparkleMaxDur    = 0.20  // seconds, at rest
	sparkleMinAttack = 0.15  // fraction of envelope, relaxed
	sparkleMaxAttack = 0.40  // fraction of envelope, tense
	sparkleClip      = 0.8
)

// Sparkle renders short percussive noise bursts when the smoothed
// sparkle impulse rises through the threshold. Edge-triggered: a burst
// arms only on the upward crossing while idle, so an elevated impulse
// does not retrigger every buffer.
//
// Envelope: a smooth sine attack over a tension-scaled fraction of the
// burst, then exponential decay. Idle is envPhase >= 1; the layer
// emits exactly 0 while idle.
type Sparkle struct {
	sampleRate float64
	noise      *noiseSource

	impulse     float64
	prevImpulse float64
	brightness  float64
	motion      float64

	filt float64 // one-pole state for the burst colour

	envPhase   float64 // [0,1) while active, >= 1 idle
	envStep    float64 // per-sample phase increment, fixed at trigger
	attackFrac float64 // fixed at trigger
}

func NewSparkle(sampleRate float64, noiseSeed uint64) *Sparkle {
	return &Sparkle{
		sampleRate: sampleRate,
		noise:      newNoiseSource(noiseSeed),
		brightness: 0.5,
		envPhase:   1.0,
	}
}

func (s *Sparkle) active() bool {
	return s.envPhase < 1.0
}

func (s *Sparkle) Process(p Params) float64 {
	smooth(&s.impulse, p.SparkleImpulse)
	smooth(&s.brightness, p.Brightness)
	smooth(&s.motion, p.Motion)

	// Detune ratio carries tension (see ParamsFrom): recover it to
	// scale the attack portion of the envelope.
	tension := clamp01((p.DetuneRatio - 1.0) * 100.0)

	if !s.active() && s.impulse > sparkleThreshold && s.prevImpulse <= sparkleThreshold {
		dur := sparkleMaxDur - (sparkleMaxDur-sparkleMinDur)*s.motion
		s.envStep = 1.0 / (dur * s.sampleRate)
		s.attackFrac = sparkleMinAttack + (sparkleMaxAttack-sparkleMinAttack)*tension
		s.envPhase = 0.0
	}
	s.prevImpulse = s.impulse

	if !s.active() {
		return 0.0
	}

	var env float64
	if s.envPhase < s.attackFrac {
		env = math.Sin(s.envPhase / s.attackFrac * math.Pi / 2.0)
	} else {
		decay := (s.envPhase - s.attackFrac) / (1.0 - s.attackFrac)
		env = math.Exp(-6.0 * decay)
	}

	// Noise burst coloured by brightness: brighter tracks the raw
	// noise more closely, darker lags behind it.
	s.filt += (s.noise.next() - s.filt) * (0.1 + 0.8*s.brightness)

	// The burst rides the live smoothed impulse, which climbs toward
	// the published strength over the first few ms of the attack.
	shaped := s.filt * (0.4 + 0.6*s.brightness) * (0.7 + 0.3*s.motion)
	out := clamp(shaped*env*s.impulse, -sparkleClip, sparkleClip)

	s.envPhase += s.envStep
	if s.envPhase >= 1.0 {
		s.envPhase = 1.0
	}

	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0.0
	}
	return out
}

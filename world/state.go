package world

import "math"

// Drift tuning
const (
	driftFactor = 0.2
	decayFactor = 0.1
)

// State holds the slowly evolving scalars that drive the soundscape.
// Density, rhythm, tension, energy and warmth live in [0,1] and are
// re-clamped on every mutation. SparkleImpulse is an instantaneous
// excitation: non-negative, unbounded above.
//
// Owned exclusively by the Engine. Never shared with the audio thread;
// cross-thread transfer goes through Snapshot values.
type State struct {
	density        float64
	rhythm         float64
	tension        float64
	energy         float64
	warmth         float64
	sparkleImpulse float64
}

// Snapshot is an immutable copy of State at a point in time.
// Value semantics, safe to hand across goroutine boundaries.
type Snapshot struct {
	Density        float64 `json:"density"`
	Rhythm         float64 `json:"rhythm"`
	Tension        float64 `json:"tension"`
	Energy         float64 `json:"energy"`
	Warmth         float64 `json:"warmth"`
	SparkleImpulse float64 `json:"sparkle_impulse"`
}

// NewState returns the neutral resting state: all bounded scalars at
// the 0.5 midpoint, no sparkle excitation.
func NewState() State {
	return State{
		density: 0.5,
		rhythm:  0.5,
		tension: 0.5,
		energy:  0.5,
		warmth:  0.5,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rand supplies the uniform draws for drift and sparkle generation.
// *math/rand.Rand satisfies it; tests inject fixed sequences.
type Rand interface {
	Float64() float64
}

// Drift applies one tick of random walk plus mean reversion to the five
// bounded scalars, and decays the sparkle impulse toward zero.
//
// Per scalar: step by driftFactor*dt in a uniformly random direction,
// clamp, then pull back toward the 0.5 midpoint by decayFactor*dt
// proportional to the displacement.
func (s *State) Drift(dt float64, rng Rand) {
	step := func(v float64) float64 {
		dir := 1.0
		if rng.Float64() < 0.5 {
			dir = -1.0
		}
		v = clamp01(v + driftFactor*dt*dir)
		decay := decayFactor * dt * (v - 0.5) / 0.5
		return clamp01(v - decay)
	}

	s.density = step(s.density)
	s.rhythm = step(s.rhythm)
	s.tension = step(s.tension)
	s.energy = step(s.energy)
	s.warmth = step(s.warmth)

	s.sparkleImpulse = math.Max(s.sparkleImpulse-2.0*dt, 0)
}

func (s *State) Density() float64 { return s.density }
func (s *State) Rhythm() float64  { return s.rhythm }
func (s *State) Tension() float64 { return s.tension }
func (s *State) Energy() float64  { return s.energy }
func (s *State) Warmth() float64  { return s.warmth }

func (s *State) SparkleImpulse() float64 { return s.sparkleImpulse }

func (s *State) SetDensity(v float64) { s.density = clamp01(v) }
func (s *State) SetRhythm(v float64)  { s.rhythm = clamp01(v) }
func (s *State) SetTension(v float64) { s.tension = clamp01(v) }
func (s *State) SetEnergy(v float64)  { s.energy = clamp01(v) }
func (s *State) SetWarmth(v float64)  { s.warmth = clamp01(v) }

// SetSparkleImpulse floors at zero but does not cap: impulses above 1.0
// are meaningful excitation, not levels.
func (s *State) SetSparkleImpulse(v float64) { s.sparkleImpulse = math.Max(v, 0) }

// Snapshot copies the current state into a shareable value.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Density:        s.density,
		Rhythm:         s.rhythm,
		Tension:        s.tension,
		Energy:         s.energy,
		Warmth:         s.warmth,
		SparkleImpulse: s.sparkleImpulse,
	}
}

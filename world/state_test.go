package world

import (
	"math/rand"
	"testing"
)

// TestSetterClamping verifies bounded scalars clamp on every mutation
func TestSetterClamping(t *testing.T) {
	s := NewState()

	s.SetDensity(1.7)
	if s.Density() != 1.0 {
		t.Errorf("Expected density clamped to 1.0, got %v", s.Density())
	}

	s.SetTension(-0.3)
	if s.Tension() != 0.0 {
		t.Errorf("Expected tension clamped to 0.0, got %v", s.Tension())
	}

	s.SetEnergy(0.25)
	if s.Energy() != 0.25 {
		t.Errorf("Expected in-range energy untouched, got %v", s.Energy())
	}
}

// TestSparkleImpulseFloor verifies the impulse floors at zero but is
// not capped above
func TestSparkleImpulseFloor(t *testing.T) {
	s := NewState()

	s.SetSparkleImpulse(-1.0)
	if s.SparkleImpulse() != 0.0 {
		t.Errorf("Expected impulse floored at 0, got %v", s.SparkleImpulse())
	}

	s.SetSparkleImpulse(3.5)
	if s.SparkleImpulse() != 3.5 {
		t.Errorf("Expected impulse to pass through unclamped, got %v", s.SparkleImpulse())
	}
}

// TestDriftBounds runs 10000 drift ticks and verifies every bounded
// scalar stays in [0,1] and the impulse stays non-negative
func TestDriftBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewState()

	for i := 0; i < 10000; i++ {
		s.Drift(0.05, rng)

		for name, v := range map[string]float64{
			"density": s.Density(),
			"rhythm":  s.Rhythm(),
			"tension": s.Tension(),
			"energy":  s.Energy(),
			"warmth":  s.Warmth(),
		} {
			if v < 0.0 || v > 1.0 {
				t.Fatalf("Scalar %s escaped [0,1] after %d ticks: %v", name, i+1, v)
			}
		}
		if s.SparkleImpulse() < 0 {
			t.Fatalf("Sparkle impulse went negative after %d ticks: %v", i+1, s.SparkleImpulse())
		}
	}
}

// TestDriftDecaysImpulse verifies the impulse decays by 2*dt per tick
func TestDriftDecaysImpulse(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewState()
	s.SetSparkleImpulse(1.0)

	s.Drift(0.1, rng)
	if got := s.SparkleImpulse(); got < 0.79 || got > 0.81 {
		t.Errorf("Expected impulse near 0.8 after one 0.1s tick, got %v", got)
	}

	for i := 0; i < 20; i++ {
		s.Drift(0.1, rng)
	}
	if s.SparkleImpulse() != 0.0 {
		t.Errorf("Expected impulse fully decayed to 0, got %v", s.SparkleImpulse())
	}
}

// TestZeroDtDrift verifies dt=0 leaves the state untouched
func TestZeroDtDrift(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewState()
	s.Drift(0, rng)

	if s.Density() != 0.5 || s.Rhythm() != 0.5 || s.Tension() != 0.5 ||
		s.Energy() != 0.5 || s.Warmth() != 0.5 {
		t.Errorf("Expected dt=0 drift to be a no-op, got %+v", s.Snapshot())
	}
}

package synth

import (
	"testing"

	"github.com/veiltone/ambientd/world"
)

// TestParamsFromNeutral verifies the mapping at the resting state
func TestParamsFromNeutral(t *testing.T) {
	snap := world.Snapshot{Density: 0.5, Rhythm: 0.5, Tension: 0.5, Energy: 0.5, Warmth: 0.5}
	p := ParamsFrom(snap)

	if p.MasterGain != 0.1 {
		t.Errorf("Expected master gain 0.1, got %v", p.MasterGain)
	}
	if p.BaseFreqHz != 160.0 {
		t.Errorf("Expected base freq 160, got %v", p.BaseFreqHz)
	}
	if p.DetuneRatio != 1.005 {
		t.Errorf("Expected detune 1.005, got %v", p.DetuneRatio)
	}
	if p.Brightness != 0.75 {
		t.Errorf("Expected brightness 0.75, got %v", p.Brightness)
	}
	if p.Motion != 0.25 {
		t.Errorf("Expected motion 0.25, got %v", p.Motion)
	}
	if p.Texture != 0.15 {
		t.Errorf("Expected texture 0.15, got %v", p.Texture)
	}
}

// TestParamsFromIsPure verifies identical snapshots map to identical bundles
func TestParamsFromIsPure(t *testing.T) {
	snap := world.Snapshot{Density: 0.3, Rhythm: 0.8, Tension: 0.1, Energy: 0.9, Warmth: 0.2, SparkleImpulse: 0.7}
	if ParamsFrom(snap) != ParamsFrom(snap) {
		t.Error("Expected mapping to be pure")
	}
}

// TestParamsFromClampRanges verifies every derived field lands in its
// documented range for extreme snapshots
func TestParamsFromClampRanges(t *testing.T) {
	for _, snap := range []world.Snapshot{
		{},
		{Density: 1, Rhythm: 1, Tension: 1, Energy: 1, Warmth: 1, SparkleImpulse: 4.2},
	} {
		p := ParamsFrom(snap)
		if p.MasterGain < 0 || p.MasterGain > 1 {
			t.Errorf("Master gain out of range: %v", p.MasterGain)
		}
		if p.BaseFreqHz < 80 || p.BaseFreqHz > 240 {
			t.Errorf("Base freq out of range: %v", p.BaseFreqHz)
		}
		if p.DetuneRatio < 0.5 || p.DetuneRatio > 2.0 {
			t.Errorf("Detune out of range: %v", p.DetuneRatio)
		}
		if p.Brightness < 0 || p.Brightness > 1 {
			t.Errorf("Brightness out of range: %v", p.Brightness)
		}
		if p.Motion < 0 || p.Motion > 1 {
			t.Errorf("Motion out of range: %v", p.Motion)
		}
		if p.Texture < 0 || p.Texture > 1 {
			t.Errorf("Texture out of range: %v", p.Texture)
		}
		if p.SparkleImpulse != snap.SparkleImpulse {
			t.Errorf("Expected impulse passed through unclamped, got %v", p.SparkleImpulse)
		}
	}
}

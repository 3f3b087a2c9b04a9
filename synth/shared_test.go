package synth

import (
	"sync"
	"testing"
)

// TestSharedParamsInitial verifies the cell returns its seed value
// before the first publish
func TestSharedParamsInitial(t *testing.T) {
	initial := DefaultParams()
	cell := NewSharedParams(initial)

	if got := cell.Load(); got != initial {
		t.Errorf("Expected initial bundle %+v, got %+v", initial, got)
	}
}

// TestSharedParamsRoundTrip verifies publish-then-load returns the
// exact bundle when no race is in flight
func TestSharedParamsRoundTrip(t *testing.T) {
	cell := NewSharedParams(DefaultParams())
	want := Params{
		MasterGain:     0.2,
		BaseFreqHz:     123.4,
		DetuneRatio:    1.007,
		Brightness:     0.9,
		Motion:         0.1,
		Texture:        0.3,
		SparkleImpulse: 2.5,
	}
	cell.Publish(want)

	if got := cell.Load(); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

// TestSharedParamsConcurrent hammers the cell with one writer and one
// reader. Every field observed must come from the published set: the
// bundle may mix generations but a field must never tear.
func TestSharedParamsConcurrent(t *testing.T) {
	cell := NewSharedParams(Params{MasterGain: 0, BaseFreqHz: 80})

	bundles := make([]Params, 64)
	valid := make(map[float64]bool)
	validFreq := make(map[float64]bool)
	valid[0] = true
	validFreq[80] = true
	for i := range bundles {
		bundles[i] = Params{
			MasterGain: float64(i) / 64.0,
			BaseFreqHz: 80.0 + float64(i),
		}
		valid[bundles[i].MasterGain] = true
		validFreq[bundles[i].BaseFreqHz] = true
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for round := 0; round < 1000; round++ {
			for i := range bundles {
				cell.Publish(bundles[i])
			}
		}
	}()

	var bad Params
	ok := true
	go func() {
		defer wg.Done()
		for i := 0; i < 100000; i++ {
			got := cell.Load()
			if !valid[got.MasterGain] || !validFreq[got.BaseFreqHz] {
				bad = got
				ok = false
				return
			}
		}
	}()

	wg.Wait()
	if !ok {
		t.Errorf("Observed torn field: %+v", bad)
	}
}

package run

import (
	"context"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/veiltone/ambientd/synth"
	"github.com/veiltone/ambientd/world"
)

// TestWorldTaskSnapshotPerEvent verifies one snapshot is emitted per
// processed event and the snapshot channel closes after the source does
func TestWorldTaskSnapshotPerEvent(t *testing.T) {
	events := make(chan world.Event, 8)
	snapshots := make(chan world.Snapshot, 8)
	engine := world.NewEngine(rand.New(rand.NewSource(1)), slog.Default())

	go World(engine, events, snapshots, slog.Default())

	events <- world.Trigger{Kind: world.TriggerPulse, Intensity: 0.3}
	events <- world.Trigger{Kind: world.TriggerStir, Intensity: 0.2}
	close(events)

	var got []world.Snapshot
	for snap := range snapshots {
		got = append(got, snap)
	}

	if len(got) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(got))
	}
	if got[0].Energy != 0.8 {
		t.Errorf("Expected first snapshot energy 0.8, got %v", got[0].Energy)
	}
	if got[1].Density != 0.7 {
		t.Errorf("Expected second snapshot density 0.7, got %v", got[1].Density)
	}
}

// TestTickerMeasuredDt verifies tick events arrive with a positive
// measured dt and the task stops on cancellation
func TestTickerMeasuredDt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan world.Event, 16)

	go Ticker(ctx, events, 50.0, slog.Default())

	for i := 0; i < 3; i++ {
		select {
		case ev := <-events:
			tick, ok := ev.(world.Tick)
			if !ok {
				t.Fatalf("Expected Tick event, got %T", ev)
			}
			if tick.DT <= 0 || tick.DT > 1.0 {
				t.Errorf("Expected measured dt in (0,1], got %v", tick.DT)
			}
		case <-time.After(time.Second):
			t.Fatal("Timed out waiting for tick")
		}
	}

	cancel()
	// Drain until the task stops producing.
	deadline := time.After(time.Second)
	for {
		select {
		case <-events:
		case <-time.After(100 * time.Millisecond):
			return
		case <-deadline:
			t.Fatal("Ticker kept firing after cancellation")
		}
	}
}

// TestControlPublishes verifies each snapshot lands in the shared cell
// and in the hub
func TestControlPublishes(t *testing.T) {
	snapshots := make(chan world.Snapshot, 4)
	shared := synth.NewSharedParams(synth.DefaultParams())
	hub := NewHub(Update{})

	done := make(chan struct{})
	go func() {
		Control(snapshots, shared, hub, slog.Default())
		close(done)
	}()

	snap := world.Snapshot{Density: 0.5, Rhythm: 0.5, Tension: 0.5, Energy: 1.0, Warmth: 0.5}
	snapshots <- snap
	close(snapshots)
	<-done

	want := synth.ParamsFrom(snap)
	if got := shared.Load(); got != want {
		t.Errorf("Expected shared cell %+v, got %+v", want, got)
	}
	if got := hub.Latest(); got.World != snap || got.Audio != want {
		t.Errorf("Expected hub latest to carry snapshot and params, got %+v", got)
	}
}

// TestHubSubscribeLatestValue verifies a slow subscriber sees the most
// recent update rather than a backlog
func TestHubSubscribeLatestValue(t *testing.T) {
	hub := NewHub(Update{})
	ch, cancel := hub.Subscribe()
	defer cancel()

	for i := 1; i <= 10; i++ {
		hub.Publish(Update{World: world.Snapshot{Energy: float64(i) / 10.0}})
	}

	select {
	case u := <-ch:
		if u.World.Energy != 1.0 {
			t.Errorf("Expected latest energy 1.0, got %v", u.World.Energy)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected a pending update")
	}
}

// TestHubCancelStopsDelivery verifies cancelled subscriptions are
// removed
func TestHubCancelStopsDelivery(t *testing.T) {
	hub := NewHub(Update{})
	ch, cancel := hub.Subscribe()
	cancel()

	hub.Publish(Update{World: world.Snapshot{Energy: 0.9}})

	select {
	case <-ch:
		t.Error("Expected no delivery after cancel")
	default:
	}
}

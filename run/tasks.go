package run

import (
	"context"
	"log/slog"
	"time"

	"github.com/veiltone/ambientd/synth"
	"github.com/veiltone/ambientd/world"
)

// World consumes events, applies each to the engine, and sends one
// snapshot per processed event. Exits when events closes and closes
// snapshots on the way out, letting downstream tasks drain gracefully.
func World(engine *world.Engine, events <-chan world.Event, snapshots chan<- world.Snapshot, log *slog.Logger) {
	defer close(snapshots)
	log.Info("world task started")

	for ev := range events {
		engine.Apply(ev)
		snapshots <- engine.Snapshot()
	}
	log.Info("event channel closed, exiting world task")
}

// Ticker sends Tick events at the given frequency until ctx is
// cancelled. dt is measured wall time between fires, not the nominal
// interval, so a stalled scheduler does not slow simulated time.
func Ticker(ctx context.Context, events chan<- world.Event, hz float64, log *slog.Logger) {
	interval := time.Duration(float64(time.Second) / hz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	log.Info("tick task started", "hz", hz, "interval", interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("tick task stopping")
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			select {
			case events <- world.Tick{DT: dt}:
			case <-ctx.Done():
				log.Info("tick task stopping")
				return
			}
		}
	}
}

// Control maps every incoming snapshot to synthesis parameters,
// publishes them into the audio thread's shared cell, and mirrors the
// pair into the hub for API consumers. Exits when snapshots closes.
func Control(snapshots <-chan world.Snapshot, shared *synth.SharedParams, hub *Hub, log *slog.Logger) {
	log.Info("audio control task started")

	for snap := range snapshots {
		p := synth.ParamsFrom(snap)
		shared.Publish(p)
		hub.Publish(Update{World: snap, Audio: p})
	}
	log.Info("snapshot channel closed, exiting control task")
}

package world

import (
	"log/slog"
	"math/rand"
	"time"
)

// Sparkle generation tuning: base per-second sparkle rate before
// density modulation.
const sparkleBaseRate = 0.3

// Engine folds Tick/Trigger/Perform events into a State. It owns the
// state exclusively; callers observe it through Snapshot values only.
//
// Not safe for concurrent use. A single control goroutine applies
// events and extracts snapshots.
type Engine struct {
	state        State
	sparklePhase float64
	rng          Rand
	log          *slog.Logger
}

// NewEngine creates an engine around the neutral state. A nil rng gets
// a time-seeded source (the production default); tests pass a seeded
// or scripted one for deterministic replay. A nil logger is replaced
// by slog.Default().
func NewEngine(rng Rand, log *slog.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		state: NewState(),
		rng:   rng,
		log:   log,
	}
}

// Apply folds one event into the state. It cannot fail: all resulting
// scalars are clamped by the State mutators. Negative tick deltas are
// rejected with a warning rather than run backwards.
func (e *Engine) Apply(ev Event) {
	switch ev := ev.(type) {
	case Tick:
		if ev.DT < 0 {
			e.log.Warn("ignoring tick with negative dt", "dt", ev.DT)
			return
		}
		e.state.Drift(ev.DT, e.rng)
		e.updateSparkles(ev.DT)
	case Trigger:
		e.applyTrigger(ev.Kind, ev.Intensity)
	case Perform:
		switch ev.Action {
		case ActionPulse:
			e.applyTrigger(TriggerPulse, ev.Intensity)
		case ActionStir:
			e.applyTrigger(TriggerStir, ev.Intensity)
		case ActionCalm:
			e.applyTrigger(TriggerCalm, ev.Intensity)
		case ActionHeat:
			e.applyTrigger(TriggerHeat, ev.Intensity)
		case ActionTense:
			e.applyTrigger(TriggerTense, ev.Intensity)
		case ActionScene:
			// Reserved: scene transitions not implemented yet
			e.log.Info("scene change requested", "name", ev.Name)
		case ActionFreeze:
			// Reserved: freeze not implemented yet
			e.log.Info("freeze requested", "seconds", ev.Seconds)
		}
	}
}

func (e *Engine) applyTrigger(kind TriggerKind, intensity float64) {
	switch kind {
	case TriggerPulse:
		e.state.SetEnergy(e.state.Energy() + intensity)
		e.state.SetTension(e.state.Tension() + 0.1*intensity)
	case TriggerStir:
		e.state.SetDensity(e.state.Density() + intensity)
		e.state.SetTension(e.state.Tension() + 0.1*intensity)
	case TriggerCalm:
		e.state.SetTension(e.state.Tension() - intensity)
		e.state.SetDensity(e.state.Density() - 0.1*intensity)
	case TriggerHeat:
		e.state.SetWarmth(e.state.Warmth() + intensity)
		e.state.SetEnergy(e.state.Energy() + 0.1*intensity)
	case TriggerTense:
		e.state.SetTension(e.state.Tension() + intensity)
	}
}

// updateSparkles advances the rhythm-paced sparkle phase and draws one
// thinned sample per tick: the per-second rate scales with density, the
// impulse strength with energy.
func (e *Engine) updateSparkles(dt float64) {
	rhythmFactor := e.state.Rhythm()*2.0 + 0.5 // 0.5 .. 2.5
	e.sparklePhase += dt * rhythmFactor

	densityFactor := e.state.Density()*2.0 + 0.5 // 0.5 .. 2.5
	if e.rng.Float64() < sparkleBaseRate*densityFactor*dt {
		strength := 0.5 + e.state.Energy()*0.5 // 0.5 .. 1.0
		e.state.SetSparkleImpulse(strength)
		e.log.Debug("sparkle generated", "strength", strength)
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return e.state.Snapshot()
}

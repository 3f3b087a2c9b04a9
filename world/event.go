package world

// TriggerKind selects which scalar pair a trigger nudges.
type TriggerKind int

const (
	TriggerPulse TriggerKind = iota
	TriggerStir
	TriggerCalm
	TriggerHeat
	TriggerTense
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerPulse:
		return "pulse"
	case TriggerStir:
		return "stir"
	case TriggerCalm:
		return "calm"
	case TriggerHeat:
		return "heat"
	case TriggerTense:
		return "tense"
	}
	return "unknown"
}

// Action identifies a perform request from a client session.
// The first five mirror the trigger kinds; Scene and Freeze are
// reserved and currently leave state untouched.
type Action int

const (
	ActionPulse Action = iota
	ActionStir
	ActionCalm
	ActionHeat
	ActionTense
	ActionScene
	ActionFreeze
)

func (a Action) String() string {
	switch a {
	case ActionPulse:
		return "pulse"
	case ActionStir:
		return "stir"
	case ActionCalm:
		return "calm"
	case ActionHeat:
		return "heat"
	case ActionTense:
		return "tense"
	case ActionScene:
		return "scene"
	case ActionFreeze:
		return "freeze"
	}
	return "unknown"
}

// Event is the tagged input to the world engine: exactly one of
// Tick, Trigger or Perform.
type Event interface {
	isEvent()
}

// Tick advances the simulation by DT seconds of drift and sparkle
// generation. Emitted by the ticker at a bounded low rate.
type Tick struct {
	DT float64
}

// Trigger nudges the state by Intensity. Intensity is caller-supplied
// and not pre-clamped; the engine clamps resulting scalars instead.
type Trigger struct {
	Kind      TriggerKind
	Intensity float64
}

// Perform is a client-session action. Trigger-style actions carry
// Intensity; ActionScene carries Name; ActionFreeze carries Seconds.
type Perform struct {
	Action    Action
	Intensity float64
	Name      string
	Seconds   float64
}

func (Tick) isEvent()    {}
func (Trigger) isEvent() {}
func (Perform) isEvent() {}

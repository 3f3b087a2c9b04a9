package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/veiltone/ambientd/world"
)

const schemaVersion = "1.0"

// Validation bounds for client-supplied actions
const (
	maxSceneNameLen  = 100
	maxFreezeSeconds = 300.0
	defaultIntensity = 0.5
)

var errUnknownRequest = errors.New("unknown request type")

// EventRequest is the POST /event body. Type selects trigger or
// perform; trigger-style entries carry kind/action plus intensity,
// scene carries name, freeze carries seconds. A nil intensity takes
// the default.
type EventRequest struct {
	Type      string   `json:"type"`
	Kind      string   `json:"kind,omitempty"`
	Action    string   `json:"action,omitempty"`
	Intensity *float64 `json:"intensity,omitempty"`
	Name      string   `json:"name,omitempty"`
	Seconds   float64  `json:"seconds,omitempty"`
}

// helloPayload opens every stream session.
type helloPayload struct {
	SessionID     string  `json:"session_id"`
	SchemaVersion string  `json:"schema_version"`
	TickRateHz    float64 `json:"tick_rate_hz"`
}

type envelope struct {
	Version string `json:"version"`
	Payload any    `json:"payload"`
}

var triggerKinds = map[string]world.TriggerKind{
	"pulse": world.TriggerPulse,
	"stir":  world.TriggerStir,
	"calm":  world.TriggerCalm,
	"heat":  world.TriggerHeat,
	"tense": world.TriggerTense,
}

var performActions = map[string]world.Action{
	"pulse":  world.ActionPulse,
	"stir":   world.ActionStir,
	"calm":   world.ActionCalm,
	"heat":   world.ActionHeat,
	"tense":  world.ActionTense,
	"scene":  world.ActionScene,
	"freeze": world.ActionFreeze,
}

// toEvent validates the request and converts it to a world event.
func (r *EventRequest) toEvent() (world.Event, error) {
	switch r.Type {
	case "trigger":
		kind, ok := triggerKinds[r.Kind]
		if !ok {
			return nil, fmt.Errorf("unknown trigger kind %q", r.Kind)
		}
		intensity, err := r.intensity()
		if err != nil {
			return nil, err
		}
		return world.Trigger{Kind: kind, Intensity: intensity}, nil

	case "perform":
		action, ok := performActions[r.Action]
		if !ok {
			return nil, fmt.Errorf("unknown perform action %q", r.Action)
		}
		switch action {
		case world.ActionScene:
			if strings.TrimSpace(r.Name) == "" {
				return nil, errors.New("scene name cannot be empty")
			}
			if len(r.Name) > maxSceneNameLen {
				return nil, fmt.Errorf("scene name too long (max %d characters)", maxSceneNameLen)
			}
			return world.Perform{Action: action, Name: r.Name}, nil
		case world.ActionFreeze:
			if r.Seconds < 0 {
				return nil, fmt.Errorf("freeze seconds must be non-negative, got %v", r.Seconds)
			}
			if r.Seconds > maxFreezeSeconds {
				return nil, fmt.Errorf("freeze seconds too long (max %v), got %v", maxFreezeSeconds, r.Seconds)
			}
			return world.Perform{Action: action, Seconds: r.Seconds}, nil
		default:
			intensity, err := r.intensity()
			if err != nil {
				return nil, err
			}
			return world.Perform{Action: action, Intensity: intensity}, nil
		}

	default:
		return nil, errUnknownRequest
	}
}

func (r *EventRequest) intensity() (float64, error) {
	if r.Intensity == nil {
		return defaultIntensity, nil
	}
	if *r.Intensity < 0 || *r.Intensity > 1 {
		return 0, fmt.Errorf("intensity must be between 0.0 and 1.0, got %v", *r.Intensity)
	}
	return *r.Intensity, nil
}

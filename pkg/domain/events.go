package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventLowerStart EventType = "lower_start"
	EventLowerEnd   EventType = "lower_end"
	EventLowerError EventType = "lower_error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// LowerEvent describes one lowering run.
type LowerEvent struct {
	EventBase
	ModelID   string        `json:"model_id,omitempty"`
	Complexes int           `json:"complexes"`
	Strands   int           `json:"strands,omitempty"`
	Bindings  int           `json:"bindings,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines callbacks for lowering observability.
type LifecycleHooks struct {
	OnLowerStart func(context.Context, *LowerEvent)
	OnLowerEnd   func(context.Context, *LowerEvent)
	OnLowerError func(context.Context, *LowerEvent)
}

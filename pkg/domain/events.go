package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventEvaluate EventType = "evaluate"
	EventScore    EventType = "score"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	DocumentID string    `json:"document_id"`
}

// EvaluateEvent is emitted after a successful or failed evaluation.
type EvaluateEvent struct {
	EventBase
	Nodes       int           `json:"nodes"`
	Errors      int           `json:"errors"`
	Warnings    int           `json:"warnings"`
	Submittable bool          `json:"submittable"`
	Duration    time.Duration `json:"duration"`
	Err         error         `json:"-"`
}

// ScoreEvent is emitted after an exam document was scored.
type ScoreEvent struct {
	EventBase
	Scored   int           `json:"scored"`
	Pending  int           `json:"pending"`
	Total    float64       `json:"total"`
	MaxTotal float64       `json:"max_total"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnEvaluate func(context.Context, *EvaluateEvent)
	OnScore    func(context.Context, *ScoreEvent)
}

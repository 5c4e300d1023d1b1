package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published by a roster registry.
const (
	TypeInitialized        = "roster.initialized"
	TypeParticipantAdded   = "participant.added"
	TypeParticipantRemoved = "participant.removed"
	TypePricingUpdated     = "pricing.updated"
)

// Event records a completed change to a registry.
// Events are values; copies are independent except for the payload, which
// publishers must not mutate after publishing.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	TaskID    string    `json:"task_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// ParticipantPayload describes a participant that was added or removed.
type ParticipantPayload struct {
	Name           string `json:"name,omitempty"`
	SeniorityLevel string `json:"seniority_level"`
	Count          int    `json:"count"` // collection size after the change
}

// PricingPayload lists the levels a pricing update applied.
type PricingPayload struct {
	Applied []string           `json:"applied"`
	Rates   map[string]float64 `json:"rates"`
}

// InitPayload summarises the state after an init call.
type InitPayload struct {
	Participants int      `json:"participants"`
	Levels       []string `json:"levels"`
}

// Option configures event creation.
type Option func(*Event)

// WithID sets a specific event ID (default: random UUID).
func WithID(id string) Option {
	return func(e *Event) {
		e.ID = id
	}
}

// WithTaskID links the event to the task that produced it.
func WithTaskID(id string) Option {
	return func(e *Event) {
		e.TaskID = id
	}
}

// WithTimestamp sets a specific timestamp (default: time.Now()).
func WithTimestamp(t time.Time) Option {
	return func(e *Event) {
		e.Timestamp = t
	}
}

// New creates an event with the given type, source and payload.
func New(eventType, source string, payload any, opts ...Option) Event {
	e := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Bytes returns the JSON encoding of the event.
func (e Event) Bytes() ([]byte, error) {
	return json.Marshal(e)
}

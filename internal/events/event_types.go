package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated     EventType = "usuario.created"
	EventUserUpdated     EventType = "usuario.updated"
	EventUserDeactivated EventType = "usuario.deactivated"
)

// AllEventTypes lists every event the service emits.
var AllEventTypes = []EventType{EventUserCreated, EventUserUpdated, EventUserDeactivated}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, userID int64, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserSnapshot is the payload carried by every usuario event.
type UserSnapshot struct {
	ID     int64    `json:"id"`
	Name   string   `json:"nome"`
	Email  string   `json:"email"`
	Active int      `json:"ativo"`
	Fields []string `json:"fields,omitempty"`
}

package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeMember EntityType = "member"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "member.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "member"
	Payload   interface{} `json:"payload"`   // Entity data every subscriber may see
	Timestamp time.Time   `json:"timestamp"` // Event timestamp

	// adminPayload replaces Payload for clients following every chapter
	adminPayload interface{}
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// WithAdminPayload returns a copy of e that sends payload to clients following every chapter
func (e Event) WithAdminPayload(payload interface{}) Event {
	e.adminPayload = payload
	return e
}

// ForAdmins returns the event as sent to clients following every chapter
func (e Event) ForAdmins() Event {
	if e.adminPayload != nil {
		e.Payload = e.adminPayload
	}
	return e
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// MemberCreated creates a member.created event
func MemberCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeMember, payload)
}

// MemberUpdated creates a member.updated event
func MemberUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeMember, payload)
}

// MemberDeleted creates a member.deleted event
func MemberDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeMember, payload)
}

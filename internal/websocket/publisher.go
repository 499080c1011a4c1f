package websocket

import "github.com/wahinekai/memberdb-backend/internal/domain"

// EventPublisher defines the interface for publishing events to WebSocket clients
type EventPublisher interface {
	// Publish sends an event to clients following the chapter and to clients following every chapter
	Publish(chapter domain.Chapter, event Event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher by broadcasting the event to the chapter
func (h *Hub) Publish(chapter domain.Chapter, event Event) {
	h.Broadcast(chapter, event)
}

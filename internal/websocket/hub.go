package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/domain"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// AllChapters subscribes a client to events from every chapter
const AllChapters domain.Chapter = "*"

// ClientInterface defines the interface that clients must implement
type ClientInterface interface {
	ID() string
	Chapter() domain.Chapter
	Send(data []byte) error
	Close() error
}

// Hub manages WebSocket connections organized by chapter
// It is safe for concurrent use
type Hub struct {
	// chapters maps a chapter to a map of client ID to client
	chapters map[domain.Chapter]map[string]ClientInterface
	mu       sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		chapters: make(map[domain.Chapter]map[string]ClientInterface),
	}
}

// Register adds a client to the hub under its chapter
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	chapter := client.Chapter()
	clientID := client.ID()

	if h.chapters[chapter] == nil {
		h.chapters[chapter] = make(map[string]ClientInterface)
	}
	h.chapters[chapter][clientID] = client

	log.Debug().
		Str("chapter", string(chapter)).
		Str("client_id", clientID).
		Msg("WebSocket client registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	chapter := client.Chapter()
	clientID := client.ID()

	if clients, ok := h.chapters[chapter]; ok {
		if _, exists := clients[clientID]; exists {
			delete(clients, clientID)

			if len(clients) == 0 {
				delete(h.chapters, chapter)
			}

			log.Debug().
				Str("chapter", string(chapter)).
				Str("client_id", clientID).
				Msg("WebSocket client unregistered")
		}
	}
}

// Broadcast sends an event to the chapter's clients and to AllChapters clients.
// Chapter clients get the event payload; AllChapters clients get its admin payload.
func (h *Hub) Broadcast(chapter domain.Chapter, event Event) {
	memberData, err := event.ToJSON()
	if err == nil {
		var adminData []byte
		adminData, err = event.ForAdmins().ToJSON()
		if err == nil {
			h.broadcast(chapter, event.Type, memberData, adminData)
			return
		}
	}
	log.Error().
		Err(err).
		Str("chapter", string(chapter)).
		Str("event_type", event.Type).
		Msg("Failed to serialize event")
}

type delivery struct {
	client ClientInterface
	data   []byte
}

func (h *Hub) broadcast(chapter domain.Chapter, eventType string, memberData, adminData []byte) {
	h.mu.RLock()
	deliveries := make([]delivery, 0, len(h.chapters[chapter])+len(h.chapters[AllChapters]))
	if chapter != AllChapters {
		for _, client := range h.chapters[chapter] {
			deliveries = append(deliveries, delivery{client: client, data: memberData})
		}
	}
	for _, client := range h.chapters[AllChapters] {
		deliveries = append(deliveries, delivery{client: client, data: adminData})
	}
	h.mu.RUnlock()

	if len(deliveries) == 0 {
		return
	}

	// Send to each client asynchronously
	for _, d := range deliveries {
		go func(d delivery) {
			if err := d.client.Send(d.data); err != nil {
				log.Warn().
					Err(err).
					Str("chapter", string(chapter)).
					Str("client_id", d.client.ID()).
					Msg("Failed to send to client")
			}
		}(d)
	}

	log.Debug().
		Str("chapter", string(chapter)).
		Str("event_type", eventType).
		Int("client_count", len(deliveries)).
		Msg("Broadcast event")
}

// ClientCount returns the number of clients subscribed to exactly this chapter
func (h *Hub) ClientCount(chapter domain.Chapter) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.chapters[chapter])
}

// TotalClientCount returns the total number of connected clients
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.chapters {
		total += len(clients)
	}
	return total
}

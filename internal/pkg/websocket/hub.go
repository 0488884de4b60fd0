package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventStructureUpdated is sent whenever the content tree of a course changes
const EventStructureUpdated = "structure.updated"

// Hub maintains the set of connected editors and broadcasts course events to them
type Hub struct {
	// Registered clients organized by course ID
	clients map[uuid.UUID]map[*Client]bool

	// Events waiting to be fanned out
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	listenersMu sync.RWMutex
	listeners   []chan *Event

	logger zerolog.Logger
}

// Event is a notification pushed to every editor of a course
type Event struct {
	Type      string    `json:"type"`
	CourseID  uuid.UUID `json:"course_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID]map[*Client]bool),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.courseID]; !ok {
		h.clients[client.courseID] = make(map[*Client]bool)
	}
	h.clients[client.courseID][client] = true

	h.logger.Info().
		Str("courseID", client.courseID.String()).
		Str("userID", client.userID).
		Msg("Editor connected")
}

// Register adds a client; it returns false once the hub has stopped
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client unless the hub has already stopped
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(client)
}

// dropLocked removes a client; the caller holds mu
func (h *Hub) dropLocked(client *Client) {
	clients, ok := h.clients[client.courseID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.courseID)
	}

	h.logger.Info().
		Str("courseID", client.courseID.String()).
		Str("userID", client.userID).
		Msg("Editor disconnected")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.dropLocked(client)
		}
	}
}

// broadcastEvent sends an event to every client of its course. Clients whose
// send buffer is full are dropped.
func (h *Hub) broadcastEvent(event *Event) {
	h.notifyListeners(event)

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("courseID", event.CourseID.String()).Msg("Failed to marshal event for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[event.CourseID]
	for client := range clients {
		select {
		case client.send <- data:
		default:
			h.dropLocked(client)
		}
	}

	h.logger.Debug().
		Str("courseID", event.CourseID.String()).
		Str("reason", event.Reason).
		Int("clientCount", len(clients)).
		Msg("Event broadcasted to course")
}

func (h *Hub) notifyListeners(event *Event) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.listeners {
		select {
		case listener <- event:
		default:
			h.logger.Warn().Msg("Skipped slow event listener")
		}
	}
}

// StructureChanged queues a structure.updated event for the course. It never
// blocks; when the queue is full the event is dropped.
func (h *Hub) StructureChanged(courseID uuid.UUID, reason string) {
	event := &Event{
		Type:      EventStructureUpdated,
		CourseID:  courseID,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("courseID", courseID.String()).Msg("Event queue full, dropping structure event")
	}
}

// ClientsCount returns the number of connected editors of a course
func (h *Hub) ClientsCount(courseID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[courseID])
}

// TotalClients returns the number of connected editors across all courses
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.clients {
		n += len(clients)
	}
	return n
}

// AddListener registers a channel that receives every broadcast event
func (h *Hub) AddListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()
	h.listeners = append(h.listeners, listener)
}

// RemoveListener removes a listener from the hub
func (h *Hub) RemoveListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.listeners {
		if l == listener {
			h.listeners[i] = h.listeners[len(h.listeners)-1]
			h.listeners = h.listeners[:len(h.listeners)-1]
			break
		}
	}
}

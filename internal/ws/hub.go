package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/order"
)

// EventNotification is the event type for cashier toasts.
const EventNotification = "notification"

// Event represents a WebSocket message pushed to a user's screens
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// userEvent routes an event to every connection a user has open
type userEvent struct {
	UserID string
	Event  Event
}

// Hub maintains the set of active clients and pushes messages to them.
// Each signed-in user has a room; a user with two tabs open gets both.
type Hub struct {
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Outbound messages; Notify drops instead of blocking when full
	broadcast chan *userEvent

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		broadcast:  make(chan *userEvent, 256),
	}
}

// Run starts the hub's main loop and returns when ctx is done.
// This should be called once, as a goroutine: go hub.Run(ctx)
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.userID] == nil {
				h.rooms[client.userID] = make(map[*Client]bool)
			}
			h.rooms[client.userID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case event := <-h.broadcast:
			message, err := json.Marshal(event.Event)
			if err != nil {
				slog.Error("ws: marshal event", "type", event.Event.Type, "error", err)
				continue
			}

			h.mu.Lock()
			for client := range h.rooms[event.UserID] {
				select {
				case client.send <- message:
				default:
					// Slow reader, drop the connection
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// join hands a client to the loop. It reports false once Run has returned.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// leave hands a client back to the loop for removal. After Run has returned
// every client is already closed, so there is nothing to do.
func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.rooms[client.userID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.userID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.rooms {
		for client := range clients {
			h.remove(client)
		}
	}
}

// Send queues an event for all of a user's connections.
// It never blocks; events are dropped when the queue is full.
func (h *Hub) Send(userID string, event Event) {
	select {
	case h.broadcast <- &userEvent{UserID: userID, Event: event}:
	default:
		slog.Warn("ws: broadcast queue full, dropping event", "user_id", userID, "type", event.Type)
	}
}

// Notify implements order.Notifier.
func (h *Hub) Notify(userID string, n order.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		slog.Error("ws: marshal notification", "error", err)
		return
	}
	h.Send(userID, Event{Type: EventNotification, Payload: payload})
}

// Connections reports how many sockets a user has open.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}

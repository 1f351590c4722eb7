package server

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Message types on the sync channel.
const (
	// Inbound from views.
	msgSelect = "select" // payload: {id, source}
	msgClear  = "clear"  // payload: {source}
	msgQuery  = "query"  // payload: QueryParams

	// Outbound to views.
	msgSelection = "selection" // payload: selection.Event, broadcast
	msgResult    = "result"    // payload: recordsResponse, per client
	msgError     = "error"     // payload: {message}
)

// Message is the envelope for everything on the WebSocket channel.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newMessage(typ string, payload any) Message {
	data, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("server: marshal message payload", zap.String("type", typ), zap.Error(err))
	}
	return Message{Type: typ, Payload: data}
}

// Hub fans selection events out to every connected view. The table and the
// map are separate clients of the same hub, which is how a marker click ends
// up highlighting a table row and vice versa.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Register adds a client to the broadcast set.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast queues msg for every connected client. Clients too slow to
// drain their send buffer are dropped rather than allowed to block the hub.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			close(c.send)
			zap.L().Warn("server: dropping slow sync client", zap.String("client", c.id))
		}
	}
}

// Len reports the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Package ws broadcasts live water-quality updates to dashboard clients.
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/aquawatch/aquawatch/internal/pkg/logger"
	"github.com/aquawatch/aquawatch/internal/pkg/metrics"
)

// Message is the envelope for everything pushed over the live feed
type Message struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Message types
const (
	TypeSnapshot = "snapshot"
	TypeAlert    = "alert"
)

// Hub maintains the set of active clients and fans broadcast messages
// out to them
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     *logger.Logger
}

// NewHub creates a new hub. Call Run in a goroutine to start it.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     log,
	}
}

// Run processes register, unregister and broadcast events until the
// process exits
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()

			metrics.SetLiveClients(n)
			h.logger.WithField("clients", n).Debug("Live feed client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mu.Unlock()

			metrics.SetLiveClients(n)
			h.logger.WithField("clients", n).Debug("Live feed client disconnected")

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer: drop it rather than stall the feed
					close(client.send)
					delete(h.clients, client)
				}
			}
			metrics.SetLiveClients(len(h.clients))
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a typed message to all connected clients
func (h *Hub) Broadcast(msgType string, payload interface{}) {
	data, err := json.Marshal(Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to encode live feed message")
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("Live feed broadcast buffer full, dropping message")
	}
}

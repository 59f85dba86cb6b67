package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"fleetbooking/internal/entities"
)

// Hub fans live-trip messages out to subscribers, keyed by booking code.
// Delivery is best effort: a subscriber with a full send buffer is dropped.
type Hub struct {
	topics map[string]map[string]*Client
	mu     sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[string]*Client),
	}
}

func (h *Hub) AddClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.topics[c.TripCode]
	if !ok {
		clients = make(map[string]*Client)
		h.topics[c.TripCode] = clients
	}
	clients[c.ID] = c
}

func (h *Hub) RemoveClient(tripCode, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.topics[tripCode]; ok {
		delete(clients, id)
		if len(clients) == 0 {
			delete(h.topics, tripCode)
		}
	}
}

// Subscribers returns the number of clients on a trip topic.
func (h *Hub) Subscribers(tripCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[tripCode])
}

// Publish sends a location update to every subscriber of the trip.
func (h *Hub) Publish(tripCode string, update entities.LocationUpdate) {
	message, err := json.Marshal(update)
	if err != nil {
		logrus.WithError(err).Error("failed to marshal location update")
		return
	}
	h.Broadcast(tripCode, message)
}

func (h *Hub) Broadcast(tripCode string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.topics[tripCode] {
		select {
		case client.Send <- message:
		default:
			go h.RemoveClient(tripCode, client.ID)
		}
	}
}

package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fleetbooking/internal/entities"
)

func TestHubAddRemove(t *testing.T) {
	hub := NewHub()
	c := &Client{ID: "a", TripCode: "TRV-1", Send: make(chan []byte, 1)}

	hub.AddClient(c)
	assert.Equal(t, 1, hub.Subscribers("TRV-1"))
	assert.Equal(t, 0, hub.Subscribers("TRV-2"))

	hub.RemoveClient("TRV-1", "a")
	assert.Equal(t, 0, hub.Subscribers("TRV-1"))
}

func TestHubPublishReachesOnlyTopicSubscribers(t *testing.T) {
	hub := NewHub()
	sub := &Client{ID: "a", TripCode: "TRV-1", Send: make(chan []byte, 1)}
	other := &Client{ID: "b", TripCode: "TRV-2", Send: make(chan []byte, 1)}
	hub.AddClient(sub)
	hub.AddClient(other)

	hub.Publish("TRV-1", entities.LocationUpdate{Latitude: 9.93, Longitude: 76.26, Speed: 42})

	select {
	case msg := <-sub.Send:
		assert.Contains(t, string(msg), "9.93")
	default:
		t.Fatal("expected subscriber to receive the update")
	}
	assert.Empty(t, other.Send)
}

func TestHubDropsFullSubscriber(t *testing.T) {
	hub := NewHub()
	full := &Client{ID: "a", TripCode: "TRV-1", Send: make(chan []byte)} // no buffer, never read
	hub.AddClient(full)

	// Should not block even though nobody reads.
	hub.Broadcast("TRV-1", []byte("ping"))
}

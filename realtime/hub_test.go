package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyChangeDeliversToUserConnections(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	mine := &Client{ID: "conn-1", UserID: "user-1", Send: make(chan []byte, 4)}
	other := &Client{ID: "conn-2", UserID: "user-2", Send: make(chan []byte, 4)}
	hub.register <- mine
	hub.register <- other

	// Registration is asynchronous; keep notifying until a delivery lands.
	var received []byte
	require.Eventually(t, func() bool {
		hub.NotifyChange("user-1", "activities", ActionInsert, "activity-1")
		select {
		case received = <-mine.Send:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	var event ChangeEvent
	require.NoError(t, json.Unmarshal(received, &event))
	assert.Equal(t, "activities", event.Table)
	assert.Equal(t, ActionInsert, event.Action)
	assert.Equal(t, "activity-1", event.ID)

	select {
	case msg := <-other.Send:
		t.Fatalf("event leaked to another user's connection: %s", msg)
	default:
	}
}

func TestNotifyChangeDropsEventsForSlowConnections(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{ID: "conn-1", UserID: "user-1", Send: make(chan []byte, 1)}
	hub.register <- client

	require.Eventually(t, func() bool {
		hub.NotifyChange("user-1", "trips", ActionUpdate, "trip-1")
		return len(client.Send) == 1
	}, time.Second, 10*time.Millisecond)

	// Buffer is full; further notifications must not block the caller.
	done := make(chan struct{})
	go func() {
		hub.NotifyChange("user-1", "trips", ActionUpdate, "trip-2")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyChange blocked on a full connection buffer")
	}
}

func TestNotifyChangeConcurrentWithConnectionChurn(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			client := &Client{
				ID:     fmt.Sprintf("conn-%d", i),
				UserID: "user-1",
				Send:   make(chan []byte, 1),
			}
			hub.register <- client
			hub.unregister <- client
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			hub.NotifyChange("user-1", "likes", ActionInsert, fmt.Sprintf("subject-%d", i))
		}
	}()

	wg.Wait()
}

package realtime

import (
	"encoding/json"
	"sync"
)

// ChangeEvent tells a connected client that one of its watched tables
// changed. The client reloads the affected provider; the event carries the
// row id so smarter incremental merges stay possible later.
type ChangeEvent struct {
	Table  string `json:"table"`
	Action string `json:"action"` // insert, update, delete
	ID     string `json:"id"`
}

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Hub tracks websocket connections per user and fans change events out to
// every connection a user has open.
type Hub struct {
	clients    map[string]*Client
	userConns  map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		userConns:  make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			if h.userConns[client.UserID] == nil {
				h.userConns[client.UserID] = make(map[*Client]bool)
			}
			h.userConns[client.UserID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				if h.userConns[client.UserID] != nil {
					delete(h.userConns[client.UserID], client)
					if len(h.userConns[client.UserID]) == 0 {
						delete(h.userConns, client.UserID)
					}
				}
				close(client.Send)
			}
			h.mu.Unlock()
		}
	}
}

// NotifyChange pushes a change event to every connection of userID.
// Delivery is best-effort: a slow connection drops the event rather than
// blocking the write path.
func (h *Hub) NotifyChange(userID, table, action, id string) {
	data, err := json.Marshal(ChangeEvent{Table: table, Action: action, ID: id})
	if err != nil {
		return
	}

	// Hold the read lock across the fan-out: Run mutates userConns and
	// closes Send channels under the write lock, so sending outside the
	// lock races both the map iteration and the close.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.userConns[userID] {
		select {
		case client.Send <- data:
		default:
		}
	}
}

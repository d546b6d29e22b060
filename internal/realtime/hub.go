package realtime

import (
	"encoding/json"
	"sync"
)

// Task event types pushed to assignees.
const (
	EventTaskCreated = "task_created"
	EventTaskUpdated = "task_updated"
	EventTaskDeleted = "task_deleted"
)

// Client represents a single websocket client connection. The network conn
// is managed by the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and pushes task events to the
// affected assignee.
type Hub struct {
	mu            sync.RWMutex
	userToClients map[uint]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			userToClients: make(map[uint]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userToClients[userID]; !ok {
		h.userToClients[userID] = make(map[Client]struct{})
	}
	h.userToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if the user has no more clients, cleans up.
func (h *Hub) Unregister(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userToClients, userID)
		}
	}
}

// NotifyTask pushes a task event to all connections of the assignee. A nil
// assignee means the task is unassigned and nobody is notified.
func (h *Hub) NotifyTask(event string, taskID uint, assignee *uint) {
	if assignee == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"type":   event,
		"taskId": taskID,
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.userToClients[*assignee] {
		// write failures are cleaned up by the ws handler on its side
		c.Send(payload)
	}
}

package services

import (
	"encoding/json"
	"sync"

	"nutritrack/models"

	"github.com/gorilla/websocket"
)

// IntakeEvent is pushed to a user's websocket clients after every successful
// add/edit/remove on one of their intake records.
type IntakeEvent struct {
	Scope  string               `json:"scope"`
	Status string               `json:"status"`
	Intake *models.IntakeRecord `json:"intake"`
}

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn
}

// IntakeHub fans intake events out to the connected clients of each user.
type IntakeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewIntakeHub() *IntakeHub {
	return &IntakeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *IntakeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *IntakeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *IntakeHub) BroadcastUpdate(userID uint, ev IntakeEvent) {
	msg, _ := json.Marshal(ev)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}

package controller

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// NotificationHub fans scheduler notifications out to connected websocket
// clients. Clients that fail a write are dropped.
type NotificationHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// HandleWS registers a client and blocks until it disconnects
func (h *NotificationHub) HandleWS(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.Close()
	}()

	// Drain reads so close frames are processed
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends a JSON payload to every connected client
func (h *NotificationHub) Broadcast(payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(payload); err != nil {
			log.Printf("Dropping websocket client: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

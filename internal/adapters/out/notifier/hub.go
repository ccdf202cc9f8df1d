// Package notifier pushes order notifications to merchant terminals over
// websocket. Delivery is best-effort: connected clients get the message,
// nobody queues for the ones that are not there.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"takeout/internal/core/ports"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// sendBuffer bounds how far a slow client may fall behind before
	// broadcasts start skipping it.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of active merchant connections and broadcasts
// notifications to all of them. It implements ports.NotificationPublisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	logger  *slog.Logger
}

// NewHub creates an empty Hub. Connections are added through HandleConnection.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		logger:  logger.With("component", "notifier"),
	}
}

// HandleConnection upgrades the request to a websocket and registers the
// connection. It returns once the upgrade completed; reading and writing run
// in their own goroutines until the client disconnects.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.logger.Info("merchant client connected", "clientID", c.id)

	go h.writePump(c)
	go h.readPump(c)
}

// Broadcast serializes the notification and enqueues it to every connected
// client. A client whose send buffer is full is skipped; its connection stays
// up and it simply misses this message.
func (h *Hub) Broadcast(_ context.Context, n ports.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to serialize notification: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	skipped := 0
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			skipped++
		}
	}
	if skipped > 0 {
		h.logger.Warn("notification skipped for slow clients",
			"type", n.Type, "orderID", n.OrderID, "skipped", skipped)
	}
	return nil
}

// ClientCount reports how many merchant connections are currently registered.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// remove unregisters the client and closes its send channel, which stops its
// writePump. Safe to call more than once.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
		h.logger.Info("merchant client disconnected", "clientID", c.id)
	}
}

// writePump drains the client's send channel into the websocket and keeps the
// connection alive with pings. Every write carries a deadline so a dead peer
// cannot hold the goroutine.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.remove(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}

// readPump consumes inbound frames. Merchant clients send nothing the hub
// acts on, but the read loop is required to process control frames and to
// detect disconnects.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

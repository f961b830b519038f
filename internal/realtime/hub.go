package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Client is one websocket subscriber for an NGO.
type Client struct {
	NGOID string
	conn  *websocket.Conn
	mu    sync.Mutex // gorilla connections allow one concurrent writer
}

// NewClient wraps an upgraded connection.
func NewClient(ngoID string, conn *websocket.Conn) *Client {
	return &Client{NGOID: ngoID, conn: conn}
}

func (c *Client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

// Ping sends a keepalive ping.
func (c *Client) Ping() error {
	return c.write(websocket.PingMessage, nil)
}

// ReadLoop blocks until the peer closes the connection or errors.
func (c *Client) ReadLoop() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub fans match events out to the NGOs they concern.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

// Register subscribes c to its NGO's events.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.NGOID] == nil {
		h.clients[c.NGOID] = make(map[*Client]struct{})
	}
	h.clients[c.NGOID][c] = struct{}{}
}

// Unregister removes c and closes its connection.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set := h.clients[c.NGOID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.NGOID)
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// Subscribers returns how many connections are open for ngoID.
func (h *Hub) Subscribers(ngoID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[ngoID])
}

// Publish sends payload as JSON to every connection of ngoID.
func (h *Hub) Publish(ngoID string, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("realtime: failed to encode payload: %v", err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[ngoID]))
	for c := range h.clients[ngoID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			h.Unregister(c)
		}
	}
}

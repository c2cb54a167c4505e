package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"campusmarket/pkg/logger"
)

// Client is one WebSocket connection streaming a single conversation to
// a participant.
type Client struct {
	UserID         string
	ConversationID string
	Conn           *websocket.Conn
	Send           chan []byte
}

// Manager tracks active conversation streams.
type Manager struct {
	clients    map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client] = struct{}{}
				m.mutex.Unlock()
				logger.Debug("Stream opened: user=%s conversation=%s", client.UserID, client.ConversationID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client]; ok {
					delete(m.clients, client)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Debug("Stream closed: user=%s conversation=%s", client.UserID, client.ConversationID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// ActiveStreams returns the number of open conversation streams.
func (m *Manager) ActiveStreams() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// Push queues a payload for the client without blocking; a client that
// cannot keep up has the frame dropped rather than stalling the
// subscription callback.
func (c *Client) Push(payload []byte) {
	select {
	case c.Send <- payload:
	default:
		logger.Warn("Dropping frame for slow stream: user=%s conversation=%s", c.UserID, c.ConversationID)
	}
}

// ReadPump drains inbound frames until the peer disconnects. The stream
// is one-way; inbound data is discarded.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Stream read error: %v", err)
			}
			break
		}
	}
}

// WritePump sends queued payloads to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		payload, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Warn("Stream write error: %v", err)
			return
		}
	}
}

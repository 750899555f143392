package ws

import (
	"context"
	"sync"

	"restaurant_backend/internal/logger"
)

// Manager tracks live connections per user and fans notifications out to them.
type Manager struct {
	clients    map[string]map[*Client]struct{} // userID -> connections
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns registration until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return

		case client := <-m.register:
			m.mu.Lock()
			if m.clients[client.UserID] == nil {
				m.clients[client.UserID] = make(map[*Client]struct{})
			}
			m.clients[client.UserID][client] = struct{}{}
			m.mu.Unlock()
			logger.Debug("websocket client registered", "user_id", client.UserID)

		case client := <-m.unregister:
			m.remove(client)
		}
	}
}

func (m *Manager) remove(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := conns[client]; ok {
		delete(conns, client)
		close(client.send)
		if len(conns) == 0 {
			delete(m.clients, client.UserID)
		}
		logger.Debug("websocket client unregistered", "user_id", client.UserID)
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for userID, conns := range m.clients {
		for client := range conns {
			close(client.send)
		}
		delete(m.clients, userID)
	}
}

// SendToUser delivers msg to every connection of the user. Slow clients are dropped.
func (m *Manager) SendToUser(userID string, msg any) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	delivered := 0
	for client := range m.clients[userID] {
		select {
		case client.send <- msg:
			delivered++
		default:
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
	return delivered
}

// Online reports whether the user has at least one live connection
func (m *Manager) Online(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[userID]) > 0
}

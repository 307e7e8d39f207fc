package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a WebSocket connection client
type Client struct {
	UserID         string
	Conn           *websocket.Conn
	Send           chan []byte
	ActiveChatRoom string
}

// Manager manages all active WebSocket connections
type Manager struct {
	clients         map[string]*Client
	chatRoomClients map[string]map[string]bool // chatID -> set of userIDs
	Register        chan *Client
	Unregister      chan *Client
	mutex           sync.RWMutex
}

// NewManager creates a new WebSocket connection manager
func NewManager() *Manager {
	return &Manager{
		clients:         make(map[string]*Client),
		chatRoomClients: make(map[string]map[string]bool),
		Register:        make(chan *Client),
		Unregister:      make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				// A reconnect replaces the previous connection; close its
				// send channel so the old write loop exits.
				if old, ok := m.clients[client.UserID]; ok && old != client {
					close(old.Send)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				log.Printf("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				// Only the currently registered connection unregisters the
				// user; a replaced connection's late teardown is a no-op.
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
					close(client.Send)
					for chatID, members := range m.chatRoomClients {
						delete(members, client.UserID)
						if len(members) == 0 {
							delete(m.chatRoomClients, chatID)
						}
					}
				}
				m.mutex.Unlock()
				log.Printf("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser sends a message to a specific user
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if ok {
		select {
		case client.Send <- message:
		default:
			log.Printf("Dropping message for slow client %s", userID)
		}
	}
}

// SendToChatRoom sends a message to every user currently joined to the room
func (m *Manager) SendToChatRoom(chatID string, message []byte) {
	m.mutex.RLock()
	members := m.chatRoomClients[chatID]
	recipients := make([]*Client, 0, len(members))
	for userID := range members {
		if client, ok := m.clients[userID]; ok {
			recipients = append(recipients, client)
		}
	}
	m.mutex.RUnlock()

	for _, client := range recipients {
		select {
		case client.Send <- message:
		default:
			log.Printf("Dropping room message for slow client %s", client.UserID)
		}
	}
}

// AddClientToChatRoom subscribes a connected user to a chat room
func (m *Manager) AddClientToChatRoom(chatID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.chatRoomClients[chatID] == nil {
		m.chatRoomClients[chatID] = make(map[string]bool)
	}
	m.chatRoomClients[chatID][userID] = true
}

// RemoveClientFromChatRoom unsubscribes a user from a chat room
func (m *Manager) RemoveClientFromChatRoom(chatID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if members, ok := m.chatRoomClients[chatID]; ok {
		delete(members, userID)
		if len(members) == 0 {
			delete(m.chatRoomClients, chatID)
		}
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}

		m.handleClientMessage(c, message)
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		err := c.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			log.Printf("error: %v", err)
			return
		}
	}
}

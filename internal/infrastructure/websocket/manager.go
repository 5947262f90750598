package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"sharespace/pkg/logger"
)

// Client represents a WebSocket connection client
type Client struct {
	UserID     string
	Conn       *websocket.Conn
	Send       chan []byte
	ActiveRoom string
}

// Manager manages all active WebSocket connections and the per-conversation
// presence rooms used for typing indicators and realtime updates.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[string]bool // conversationID -> set of userIDs
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex

	// Invoked when a room gains its first member / loses its last one.
	onRoomActive func(conversationID string)
	onRoomIdle   func(conversationID string)
}

// SetRoomHooks registers callbacks fired when a conversation room becomes
// occupied or empty. Must be called before Start.
func (m *Manager) SetRoomHooks(onActive, onIdle func(conversationID string)) {
	m.onRoomActive = onActive
	m.onRoomIdle = onIdle
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]bool),
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
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.UserID]; ok {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				var emptied []string
				for roomID, members := range m.rooms {
					delete(members, client.UserID)
					if len(members) == 0 {
						delete(m.rooms, roomID)
						emptied = append(emptied, roomID)
					}
				}
				m.mutex.Unlock()
				if m.onRoomIdle != nil {
					for _, roomID := range emptied {
						m.onRoomIdle(roomID)
					}
				}
				logger.Info("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) JoinRoom(conversationID, userID string) {
	m.mutex.Lock()
	first := m.rooms[conversationID] == nil
	if first {
		m.rooms[conversationID] = make(map[string]bool)
	}
	m.rooms[conversationID][userID] = true
	m.mutex.Unlock()

	if first && m.onRoomActive != nil {
		m.onRoomActive(conversationID)
	}
}

func (m *Manager) LeaveRoom(conversationID, userID string) {
	m.mutex.Lock()
	emptied := false
	if members, ok := m.rooms[conversationID]; ok {
		delete(members, userID)
		if len(members) == 0 {
			delete(m.rooms, conversationID)
			emptied = true
		}
	}
	m.mutex.Unlock()

	if emptied && m.onRoomIdle != nil {
		m.onRoomIdle(conversationID)
	}
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
			logger.Warn("Dropping message for slow client %s", userID)
		}
	}
}

// SendToRoom broadcasts to every member of a conversation room except the
// excluded user (usually the sender).
func (m *Manager) SendToRoom(conversationID string, message []byte, excludeUserID string) {
	m.mutex.RLock()
	members := make([]string, 0, len(m.rooms[conversationID]))
	for userID := range m.rooms[conversationID] {
		if userID != excludeUserID {
			members = append(members, userID)
		}
	}
	m.mutex.RUnlock()

	for _, userID := range members {
		m.SendToUser(userID, message)
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
				logger.Error("websocket read: %v", err)
			}
			break
		}

		m.HandleClientMessage(c, message)
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

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("websocket write: %v", err)
			return
		}
	}
}

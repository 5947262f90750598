package websocket

import (
	"encoding/json"
	"time"

	"sharespace/pkg/logger"
)

// WebSocket message types
const (
	MessageTypePing         = "ping"
	MessageTypePong         = "pong"
	MessageTypeJoinRoom     = "join_room"
	MessageTypeLeaveRoom    = "leave_room"
	MessageTypeTyping       = "typing"
	MessageTypeNewMessage   = "new_message"
	MessageTypeMessagesSync = "messages_sync"
	MessageTypeError        = "error"
)

type WSMessage struct {
	Type           string      `json:"type"`
	ConversationID string      `json:"conversation_id,omitempty"`
	Data           interface{} `json:"data,omitempty"`
	Timestamp      string      `json:"timestamp"`
}

type TypingData struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
	Typing         bool   `json:"typing"`
}

// HandleClientMessage processes incoming WebSocket messages. Only ephemeral
// signals travel this path; durable mutations go through the HTTP API.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var wsMessage WSMessage

	if err := json.Unmarshal(messageBytes, &wsMessage); err != nil {
		logger.Warn("WebSocket: invalid message from client %s: %v", client.UserID, err)
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	switch wsMessage.Type {
	case MessageTypePing:
		m.sendToClient(client, WSMessage{
			Type:      MessageTypePong,
			Timestamp: time.Now().Format(time.RFC3339),
		})

	case MessageTypeJoinRoom:
		if wsMessage.ConversationID == "" {
			m.sendErrorToClient(client, "Missing conversation_id")
			return
		}
		m.JoinRoom(wsMessage.ConversationID, client.UserID)
		client.ActiveRoom = wsMessage.ConversationID

	case MessageTypeLeaveRoom:
		if wsMessage.ConversationID == "" {
			m.sendErrorToClient(client, "Missing conversation_id")
			return
		}
		m.LeaveRoom(wsMessage.ConversationID, client.UserID)
		if client.ActiveRoom == wsMessage.ConversationID {
			client.ActiveRoom = ""
		}

	case MessageTypeTyping:
		m.handleTyping(client, wsMessage)

	default:
		logger.Debug("WebSocket: unknown message type '%s' from %s", wsMessage.Type, client.UserID)
	}
}

func (m *Manager) handleTyping(client *Client, wsMessage WSMessage) {
	if wsMessage.ConversationID == "" {
		m.sendErrorToClient(client, "Missing conversation_id")
		return
	}

	typing := false
	if data, ok := wsMessage.Data.(map[string]interface{}); ok {
		typing, _ = data["typing"].(bool)
	}

	m.BroadcastTyping(wsMessage.ConversationID, client.UserID, typing)
}

// BroadcastTyping publishes an ephemeral typing signal to the conversation's
// room. Nothing is persisted and delivery is best-effort.
func (m *Manager) BroadcastTyping(conversationID, userID string, typing bool) {
	message := WSMessage{
		Type:           MessageTypeTyping,
		ConversationID: conversationID,
		Data: TypingData{
			ConversationID: conversationID,
			UserID:         userID,
			Typing:         typing,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return
	}

	m.SendToRoom(conversationID, payload, userID)
}

func (m *Manager) sendToClient(client *Client, message WSMessage) {
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}

	select {
	case client.Send <- payload:
	default:
		logger.Warn("WebSocket: send buffer full for client %s", client.UserID)
	}
}

func (m *Manager) sendErrorToClient(client *Client, errMsg string) {
	m.sendToClient(client, WSMessage{
		Type:      MessageTypeError,
		Data:      map[string]string{"message": errMsg},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

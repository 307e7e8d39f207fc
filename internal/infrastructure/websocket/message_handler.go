package websocket

import (
	"encoding/json"
	"log"

	"campusfind/pkg/logger"
)

const (
	MessageTypeJoinChatRoom  = "join_chat_room"
	MessageTypeLeaveChatRoom = "leave_chat_room"
	MessageTypePing          = "ping"
	MessageTypePong          = "pong"
	MessageTypeError         = "error"
)

// ClientMessage is the envelope clients send over the socket.
type ClientMessage struct {
	Type   string `json:"type"`
	ChatID string `json:"chat_id,omitempty"`
}

// ServerMessage is the envelope the server pushes to clients.
type ServerMessage struct {
	Type    string      `json:"type"`
	ChatID  string      `json:"chat_id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

func (m *Manager) handleClientMessage(client *Client, raw []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	switch msg.Type {
	case MessageTypeJoinChatRoom:
		if msg.ChatID == "" {
			m.sendErrorToClient(client, "Missing chat_id")
			return
		}
		m.AddClientToChatRoom(msg.ChatID, client.UserID)
		client.ActiveChatRoom = msg.ChatID
		logger.Debug("WebSocket: Client %s joined chat room %s", client.UserID, msg.ChatID)

	case MessageTypeLeaveChatRoom:
		if msg.ChatID == "" {
			m.sendErrorToClient(client, "Missing chat_id")
			return
		}
		m.RemoveClientFromChatRoom(msg.ChatID, client.UserID)
		if client.ActiveChatRoom == msg.ChatID {
			client.ActiveChatRoom = ""
		}
		logger.Debug("WebSocket: Client %s left chat room %s", client.UserID, msg.ChatID)

	case MessageTypePing:
		m.sendToClient(client, ServerMessage{Type: MessageTypePong})

	default:
		m.sendErrorToClient(client, "Unknown message type: "+msg.Type)
	}
}

func (m *Manager) sendToClient(client *Client, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal server message: %v", err)
		return
	}

	select {
	case client.Send <- data:
	default:
		log.Printf("Dropping message for slow client %s", client.UserID)
	}
}

func (m *Manager) sendErrorToClient(client *Client, message string) {
	m.sendToClient(client, ServerMessage{Type: MessageTypeError, Payload: message})
}

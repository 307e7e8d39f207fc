package websocket

import (
	"encoding/json"
	"log"

	"campusfind/internal/domain/entity"
)

const (
	EventNewMessage   = "new_message"
	EventChatUpdated  = "chat_updated"
	EventNotification = "notification"
	EventReportUpdate = "report_updated"
)

// Publisher fans domain events out over the websocket hub. It satisfies the
// usecase event publisher contract.
type Publisher struct {
	manager *Manager
}

func NewPublisher(manager *Manager) *Publisher {
	return &Publisher{manager: manager}
}

func (p *Publisher) sendToChatRoom(chatID string, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", msg.Type, err)
		return
	}
	p.manager.SendToChatRoom(chatID, data)
}

func (p *Publisher) PublishMessage(chatID string, message *entity.Message) {
	p.sendToChatRoom(chatID, ServerMessage{
		Type:    EventNewMessage,
		ChatID:  chatID,
		Payload: message,
	})
}

func (p *Publisher) PublishChatUpdate(chat *entity.Chat) {
	msg := ServerMessage{
		Type:    EventChatUpdated,
		ChatID:  chat.ID,
		Payload: chat,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal chat update: %v", err)
		return
	}
	// Chat list previews go to every participant, joined to the room or not.
	for _, userID := range chat.Participants {
		p.manager.SendToUser(userID, data)
	}
}

func (p *Publisher) PublishNotification(userID string, notification *entity.Notification) {
	data, err := json.Marshal(ServerMessage{
		Type:    EventNotification,
		Payload: notification,
	})
	if err != nil {
		log.Printf("Failed to marshal notification event: %v", err)
		return
	}
	p.manager.SendToUser(userID, data)
}

func (p *Publisher) PublishReportUpdate(report *entity.Report) {
	data, err := json.Marshal(ServerMessage{
		Type:    EventReportUpdate,
		Payload: report,
	})
	if err != nil {
		log.Printf("Failed to marshal report update: %v", err)
		return
	}
	p.manager.SendToUser(report.UserID, data)
}

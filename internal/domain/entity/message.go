package entity

import "time"

const (
	MessageTypeText        = "text"
	MessageTypeImage       = "image"
	MessageTypeSystem      = "system"
	MessageTypeSubmission  = "submission"
	MessageTypeReturnImage = "return_image"

	SystemSenderID = "system"
)

// Message is an append-only chat entry, ordered by timestamp ascending.
type Message struct {
	ID          string    `json:"id" firestore:"id"`
	ChatID      string    `json:"chat_id" firestore:"chatId"`
	SenderID    string    `json:"sender_id" firestore:"senderId"` // user id or "system"
	SenderName  string    `json:"sender_name,omitempty" firestore:"senderName,omitempty"`
	Content     string    `json:"content" firestore:"content"`
	ImageBase64 string    `json:"image_base64,omitempty" firestore:"imageBase64,omitempty"`
	Type        string    `json:"type" firestore:"type"`
	Timestamp   time.Time `json:"timestamp" firestore:"timestamp"`
}

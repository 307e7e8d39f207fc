package entity

import "time"

// Chat is a per-case thread between a report owner and a counterparty. The id
// is derived from the sorted participant pair plus the item id, so the same
// two users discussing the same item always land in the same chat.
type Chat struct {
	ID           string         `json:"id" firestore:"id"`
	Participants []string       `json:"participants" firestore:"participants"`
	ItemID       string         `json:"item_id" firestore:"itemId"`
	ItemName     string         `json:"item_name,omitempty" firestore:"itemName,omitempty"`
	ItemType     string         `json:"item_type,omitempty" firestore:"itemType,omitempty"`
	LastMessage  string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastUpdated  time.Time      `json:"last_updated" firestore:"lastUpdated"`
	UnreadCount  map[string]int `json:"unread_count" firestore:"unreadCount"` // userID -> count
	AdminJoined  bool           `json:"admin_joined" firestore:"adminJoined"`
	CreatedAt    time.Time      `json:"created_at" firestore:"createdAt"`
}

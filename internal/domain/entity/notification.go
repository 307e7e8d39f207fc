package entity

import "time"

const (
	NotificationClaimSubmitted  = "claim_submitted"
	NotificationClaimVerified   = "claim_verified"
	NotificationClaimRejected   = "claim_rejected"
	NotificationReturnSubmitted = "return_submitted"
	NotificationReturnVerified  = "return_verified"
	NotificationReturnRejected  = "return_rejected"
	NotificationAdminJoined     = "admin_joined"
)

// Notification is one entry in a user's inbox.
type Notification struct {
	ID        string    `json:"id" firestore:"id"`
	Message   string    `json:"message" firestore:"message"`
	Type      string    `json:"type" firestore:"type"`
	Read      bool      `json:"read" firestore:"read"`
	ReportID  string    `json:"report_id,omitempty" firestore:"reportId,omitempty"`
	ClaimID   string    `json:"claim_id,omitempty" firestore:"claimId,omitempty"`
	ReturnID  string    `json:"return_id,omitempty" firestore:"returnId,omitempty"`
	ChatID    string    `json:"chat_id,omitempty" firestore:"chatId,omitempty"`
	ItemName  string    `json:"item_name,omitempty" firestore:"itemName,omitempty"`
	ItemType  string    `json:"item_type,omitempty" firestore:"itemType,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

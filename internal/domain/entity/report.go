package entity

import "time"

const (
	ReportTypeLost  = "lost"
	ReportTypeFound = "found"

	ReportStatusPending       = "pending"
	ReportStatusClaimPending  = "claim_pending"
	ReportStatusReturnPending = "return_pending"
	ReportStatusResolved      = "resolved"
	ReportStatusReturned      = "returned"
)

// Report is a lost-or-found item posting. Every report is mirrored verbatim
// into the reporting user's own subcollection under the same id.
type Report struct {
	ID            string     `json:"id" firestore:"id"`
	Type          string     `json:"type" firestore:"type"` // "lost" or "found"
	Category      string     `json:"category" firestore:"category"`
	ItemName      string     `json:"item_name" firestore:"itemName"`
	Location      string     `json:"location" firestore:"location"`
	Date          string     `json:"date" firestore:"date"`
	Description   string     `json:"description,omitempty" firestore:"description,omitempty"`
	ContactEmail  string     `json:"contact_email" firestore:"contactEmail"`
	ContactNumber string     `json:"contact_number,omitempty" firestore:"contactNumber,omitempty"`
	IDTag         string     `json:"id_tag,omitempty" firestore:"idTag,omitempty"`       // found items
	OwnerTag      string     `json:"owner_tag,omitempty" firestore:"ownerTag,omitempty"` // lost items
	ImageBase64   string     `json:"image_base64,omitempty" firestore:"imageBase64,omitempty"`
	UserID        string     `json:"user_id" firestore:"userId"`
	UserEmail     string     `json:"user_email" firestore:"userEmail"`
	UserName      string     `json:"user_name,omitempty" firestore:"userName,omitempty"`
	Status        string     `json:"status" firestore:"status"`
	ChatID        string     `json:"chat_id,omitempty" firestore:"chatId,omitempty"`
	CreatedAt     time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time  `json:"updated_at" firestore:"updatedAt"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty" firestore:"resolvedAt,omitempty"`
	ResolvedBy    string     `json:"resolved_by,omitempty" firestore:"resolvedBy,omitempty"`

	ResolvedClaimID  string `json:"resolved_claim_id,omitempty" firestore:"resolvedClaimId,omitempty"`
	ResolvedReturnID string `json:"resolved_return_id,omitempty" firestore:"resolvedReturnId,omitempty"`
}

package entity

import "time"

const (
	CaseStatusPending  = "pending"
	CaseStatusVerified = "verified"
	CaseStatusRejected = "rejected"
)

// Claim is a request asserting ownership of a found item. It lives in a
// subcollection of the parent report; "verified" and "rejected" are terminal.
type Claim struct {
	ID             string     `json:"id" firestore:"id"`
	ReportID       string     `json:"report_id" firestore:"reportId"`
	ClaimantID     string     `json:"claimant_id" firestore:"claimantId"`
	ClaimantName   string     `json:"claimant_name,omitempty" firestore:"claimantName,omitempty"`
	ContactInfo    string     `json:"contact_info" firestore:"contactInfo"`
	Proof          string     `json:"proof" firestore:"proof"`
	AdditionalInfo string     `json:"additional_info,omitempty" firestore:"additionalInfo,omitempty"`
	Status         string     `json:"status" firestore:"status"`
	ChatID         string     `json:"chat_id" firestore:"chatId"`
	AdminNotes     string     `json:"admin_notes,omitempty" firestore:"adminNotes,omitempty"`
	CreatedAt      time.Time  `json:"created_at" firestore:"createdAt"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty" firestore:"resolvedAt,omitempty"`
	ResolvedBy     string     `json:"resolved_by,omitempty" firestore:"resolvedBy,omitempty"`
}

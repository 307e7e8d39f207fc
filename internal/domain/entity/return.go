package entity

import "time"

// Return is a submission indicating a lost item has been found and is being
// returned to its owner. Structurally parallel to Claim, with an optional
// inline photo of the item.
type Return struct {
	ID           string     `json:"id" firestore:"id"`
	ReportID     string     `json:"report_id" firestore:"reportId"`
	ReturnerID   string     `json:"returner_id" firestore:"returnerId"`
	ReturnerName string     `json:"returner_name,omitempty" firestore:"returnerName,omitempty"`
	ContactInfo  string     `json:"contact_info" firestore:"contactInfo"`
	Description  string     `json:"description,omitempty" firestore:"description,omitempty"`
	ImageBase64  string     `json:"image_base64,omitempty" firestore:"imageBase64,omitempty"`
	Status       string     `json:"status" firestore:"status"`
	ChatID       string     `json:"chat_id" firestore:"chatId"`
	AdminNotes   string     `json:"admin_notes,omitempty" firestore:"adminNotes,omitempty"`
	CreatedAt    time.Time  `json:"created_at" firestore:"createdAt"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty" firestore:"resolvedAt,omitempty"`
	ResolvedBy   string     `json:"resolved_by,omitempty" firestore:"resolvedBy,omitempty"`
}

package repository

import (
	"context"
	"time"

	"campusfind/internal/domain/entity"
)

// CaseResolution carries the terminal transition of a claim or return.
type CaseResolution struct {
	ReportID   string
	CaseID     string
	Status     string // "verified" or "rejected"
	AdminNotes string
	ResolvedBy string
	ResolvedAt time.Time
}

type ClaimRepository interface {
	Create(ctx context.Context, claim *entity.Claim) error
	GetByID(ctx context.Context, reportID, claimID string) (*entity.Claim, error)
	// ListByStatus queries across all reports (collection group).
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Claim, int64, error)

	// Resolve performs the pending -> verified/rejected transition as a
	// conditional write; a claim that is no longer pending yields a conflict.
	// Verification also marks the parent report resolved in the same
	// transaction.
	Resolve(ctx context.Context, res CaseResolution) error

	// Mirror operations are best-effort from the caller's point of view.
	CreateOwnerMirror(ctx context.Context, ownerID string, claim *entity.Claim) error
	PatchOwnerMirror(ctx context.Context, ownerID, reportID, claimID string, fields map[string]interface{}) error
	UpsertClaimantMirror(ctx context.Context, claimantID string, claim *entity.Claim, fields map[string]interface{}) error
}

package repository

import (
	"context"

	"campusfind/internal/domain/entity"
)

type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.Return) error
	GetByID(ctx context.Context, reportID, returnID string) (*entity.Return, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Return, int64, error)

	// Resolve mirrors ClaimRepository.Resolve; verification marks the parent
	// report returned.
	Resolve(ctx context.Context, res CaseResolution) error

	CreateOwnerMirror(ctx context.Context, ownerID string, ret *entity.Return) error
	PatchOwnerMirror(ctx context.Context, ownerID, reportID, returnID string, fields map[string]interface{}) error
	UpsertReturnerMirror(ctx context.Context, returnerID string, ret *entity.Return, fields map[string]interface{}) error
}

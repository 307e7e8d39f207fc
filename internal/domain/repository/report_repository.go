package repository

import (
	"context"

	"campusfind/internal/domain/entity"
)

type ReportRepository interface {
	// Create writes the global report and the owner's mirror copy atomically.
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Report, int64, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Report, int64, error)
	Patch(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error

	// Mirror operations target users/{userID}/reports/{reportID}; callers treat
	// their failures as best-effort.
	PatchMirror(ctx context.Context, userID, reportID string, fields map[string]interface{}) error
	DeleteMirror(ctx context.Context, userID, reportID string) error
}

package repository

import (
	"context"

	"campusfind/internal/domain/entity"
)

type NotificationRepository interface {
	// Create writes the notification document and appends its id to the
	// user's unread aggregate.
	Create(ctx context.Context, userID string, notification *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error)

	// MarkAllRead flips every unread notification document and then clears the
	// aggregate on the user document. The steps are not transactional.
	MarkAllRead(ctx context.Context, userID string) error
}

package usecase

import (
	"context"

	"campusfind/internal/domain/entity"
	"campusfind/internal/domain/repository"
	"campusfind/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	events           EventPublisher
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	events EventPublisher,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		events:           events,
	}
}

func (uc *NotificationUseCase) List(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.notificationRepo.ListByUser(ctx, userID, limit, offset)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (int, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(user.UnreadNotifications), nil
}

// Notify persists the notification and pushes it over the event stream.
// Failures are logged, never propagated: a dropped notification must not fail
// the workflow that emitted it.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID string, notification *entity.Notification) {
	if err := uc.notificationRepo.Create(ctx, userID, notification); err != nil {
		logger.Error("Notify: failed to persist notification for user %s: %v", userID, err)
		return
	}
	uc.events.PublishNotification(userID, notification)
}

package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"campusfind/internal/domain/entity"
	"campusfind/internal/domain/repository"
	"campusfind/pkg/errors"
	"campusfind/pkg/logger"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, userID string, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()

	_, err := r.client.Collection("users").Doc(userID).
		Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to create notification", err)
	}

	// Unread aggregate on the user document. Non-fatal: the notification
	// itself is already persisted.
	_, err = r.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "unreadNotifications", Value: firestore.ArrayUnion(notification.ID)},
	})
	if err != nil {
		logger.Warn("Failed to update unread aggregate for user %s: %v", userID, err)
	}

	return nil
}

func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	query := r.client.Collection("users").Doc(userID).Collection("notifications").
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list notifications", err)
	}

	var notifications []*entity.Notification
	for _, doc := range allDocs {
		var n entity.Notification
		if err := doc.DataTo(&n); err != nil {
			logger.Warn("Error parsing notification data %s: %v", doc.Ref.ID, err)
			continue
		}
		n.ID = doc.Ref.ID
		notifications = append(notifications, &n)
	}

	total := int64(len(notifications))

	start := offset
	if start > len(notifications) {
		start = len(notifications)
	}
	end := len(notifications)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return notifications[start:end], total, nil
}

func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	docs, err := r.client.Collection("users").Doc(userID).Collection("notifications").
		Where("read", "==", false).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to load unread notifications", err)
	}

	batch := r.client.Batch()
	for _, doc := range docs {
		batch.Set(doc.Ref, map[string]interface{}{"read": true}, firestore.MergeAll)
	}
	batch.Update(r.client.Collection("users").Doc(userID), []firestore.Update{
		{Path: "unreadNotifications", Value: []string{}},
	})

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to mark notifications read", err)
	}

	return nil
}

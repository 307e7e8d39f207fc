package repository

import (
	"context"
	"time"

	"campusfind/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)

	// Message methods
	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)

	SetLastMessage(ctx context.Context, chatID, content string, at time.Time) error
	IncrementUnread(ctx context.Context, chatID, userID string) error
	ResetUnread(ctx context.Context, chatID, userID string) error

	// AddAdminParticipant adds the admin to the chat iff no admin has joined
	// yet; reports whether this call performed the join.
	AddAdminParticipant(ctx context.Context, chatID, adminID string) (bool, error)
}

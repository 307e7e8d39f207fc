package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campusfind/internal/domain/entity"
	"campusfind/internal/domain/repository"
	"campusfind/pkg/errors"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	chat.CreatedAt = time.Now()
	chat.LastUpdated = chat.CreatedAt
	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
		for _, p := range chat.Participants {
			chat.UnreadCount[p] = 0
		}
	}

	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to create chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}
	chat.ID = doc.Ref.ID

	return &chat, nil
}

func (r *firestoreChatRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	query := r.client.Collection("chats").
		Where("participants", "array-contains", userID).
		OrderBy("lastUpdated", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while listing chats for user %s: %v", userID, err)
		return nil, 0, errors.Internal("Failed to list chats", err)
	}

	var chats []*entity.Chat
	for _, doc := range allDocs {
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			log.Printf("Error parsing chat data %s: %v", doc.Ref.ID, err)
			continue
		}
		chat.ID = doc.Ref.ID
		chats = append(chats, &chat)
	}

	total := int64(len(chats))

	start := offset
	if start > len(chats) {
		start = len(chats)
	}
	end := len(chats)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return chats[start:end], total, nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	_, err := r.client.Collection("chats").Doc(message.ChatID).
		Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("chats").Doc(chatID).Collection("messages").
		OrderBy("timestamp", firestore.Asc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list messages", err)
	}

	var messages []*entity.Message
	for _, doc := range allDocs {
		var msg entity.Message
		if err := doc.DataTo(&msg); err != nil {
			log.Printf("Error parsing message data %s: %v", doc.Ref.ID, err)
			continue
		}
		msg.ID = doc.Ref.ID
		messages = append(messages, &msg)
	}

	total := int64(len(messages))

	start := offset
	if start > len(messages) {
		start = len(messages)
	}
	end := len(messages)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return messages[start:end], total, nil
}

func (r *firestoreChatRepository) SetLastMessage(ctx context.Context, chatID, content string, at time.Time) error {
	_, err := r.client.Collection("chats").Doc(chatID).Set(ctx, map[string]interface{}{
		"lastMessage": content,
		"lastUpdated": at,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update chat preview", err)
	}

	return nil
}

func (r *firestoreChatRepository) IncrementUnread(ctx context.Context, chatID, userID string) error {
	_, err := r.client.Collection("chats").Doc(chatID).Update(ctx, []firestore.Update{
		{Path: "unreadCount." + userID, Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment unread count", err)
	}

	return nil
}

func (r *firestoreChatRepository) ResetUnread(ctx context.Context, chatID, userID string) error {
	_, err := r.client.Collection("chats").Doc(chatID).Update(ctx, []firestore.Update{
		{Path: "unreadCount." + userID, Value: 0},
	})
	if err != nil {
		return errors.Internal("Failed to reset unread count", err)
	}

	return nil
}

func (r *firestoreChatRepository) AddAdminParticipant(ctx context.Context, chatID, adminID string) (bool, error) {
	chatRef := r.client.Collection("chats").Doc(chatID)

	var joined bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// RunTransaction retries the closure on contention, so the flag
		// must be reset on every attempt or a stale true survives into
		// a retry that finds the admin already joined.
		joined = false

		doc, err := tx.Get(chatRef)
		if err != nil {
			return err
		}

		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			return err
		}
		if chat.AdminJoined {
			return nil
		}

		joined = true
		return tx.Update(chatRef, []firestore.Update{
			{Path: "participants", Value: firestore.ArrayUnion(adminID)},
			{Path: "adminJoined", Value: true},
			{Path: "unreadCount." + adminID, Value: 0},
		})
	})

	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, errors.NotFound("Chat", err)
		}
		return false, errors.Internal("Failed to join chat", err)
	}

	return joined, nil
}

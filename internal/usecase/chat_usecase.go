package usecase

import (
	"context"
	"log"
	"time"

	"campusfind/internal/domain/entity"
	"campusfind/internal/domain/repository"
	"campusfind/internal/infrastructure/ratelimit"
	"campusfind/pkg/errors"
	"campusfind/pkg/imaging"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	reportRepo  repository.ReportRepository
	userRepo    repository.UserRepository
	events      EventPublisher
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	events EventPublisher,
	rateLimiter *ratelimit.RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		reportRepo:  reportRepo,
		userRepo:    userRepo,
		events:      events,
		rateLimiter: rateLimiter,
	}
}

type SendMessageInput struct {
	Content     string
	Type        string // "text" or "image"
	ImageBase64 string
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, chatID string, input SendMessageInput) (*entity.Message, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		log.Printf("SendMessage rate limited: user %s must wait %v", senderID, waitTime)
		return nil, errors.TooManyRequests("Too many messages. Please slow down", waitTime)
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(chat, senderID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	msgType := input.Type
	if msgType == "" {
		msgType = entity.MessageTypeText
	}
	if msgType != entity.MessageTypeText && msgType != entity.MessageTypeImage {
		return nil, errors.BadRequest("Message type must be text or image", nil)
	}

	image := input.ImageBase64
	if msgType == entity.MessageTypeImage {
		if image == "" {
			return nil, errors.BadRequest("Image messages require an image payload", nil)
		}
		image, err = imaging.Normalize(image)
		if err != nil {
			return nil, err
		}
	}

	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ChatID:      chatID,
		SenderID:    senderID,
		SenderName:  sender.DisplayName,
		Content:     input.Content,
		ImageBase64: image,
		Type:        msgType,
		Timestamp:   time.Now(),
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	preview := message.Content
	if msgType == entity.MessageTypeImage && preview == "" {
		preview = "[image]"
	}
	if err := uc.chatRepo.SetLastMessage(ctx, chatID, preview, message.Timestamp); err != nil {
		log.Printf("SendMessage: failed to update preview for chat %s: %v", chatID, err)
	}

	for _, participantID := range chat.Participants {
		if participantID == senderID {
			continue
		}
		if err := uc.chatRepo.IncrementUnread(ctx, chatID, participantID); err != nil {
			log.Printf("SendMessage: failed to bump unread for %s in chat %s: %v", participantID, chatID, err)
		}
	}

	uc.events.PublishMessage(chatID, message)

	chat.LastMessage = preview
	chat.LastUpdated = message.Timestamp
	uc.events.PublishChatUpdate(chat)

	return message, nil
}

func (uc *ChatUseCase) GetChat(ctx context.Context, userID, chatID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(chat, userID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}
	return chat, nil
}

func (uc *ChatUseCase) ListMyChats(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	return uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}
	if !isParticipant(chat, userID) {
		return nil, 0, errors.Forbidden("You are not a participant in this chat", nil)
	}
	return uc.chatRepo.ListMessages(ctx, chatID, limit, offset)
}

func (uc *ChatUseCase) MarkChatRead(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !isParticipant(chat, userID) {
		return errors.Forbidden("You are not a participant in this chat", nil)
	}
	return uc.chatRepo.ResetUnread(ctx, chatID, userID)
}

type QuickActionInput struct {
	Message      string
	ReportStatus string // optional report status transition
}

// QuickAction lets an admin drop a canned message into a chat they joined,
// optionally moving the underlying report to a new status at the same time.
// The message itself goes through the regular send path, so the counterparty
// sees it from the admin and their unread counter is bumped.
func (uc *ChatUseCase) QuickAction(ctx context.Context, adminID, chatID string, input QuickActionInput) (*entity.Message, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(chat, adminID) {
		return nil, errors.Forbidden("Join the chat before using quick actions", nil)
	}
	if input.Message == "" {
		return nil, errors.BadRequest("Quick action message is required", nil)
	}

	if input.ReportStatus != "" {
		switch input.ReportStatus {
		case entity.ReportStatusPending, entity.ReportStatusClaimPending,
			entity.ReportStatusReturnPending, entity.ReportStatusResolved,
			entity.ReportStatusReturned:
		default:
			return nil, errors.BadRequest("Unknown report status", nil)
		}
		if chat.ItemID == "" {
			return nil, errors.BadRequest("This chat is not linked to a report", nil)
		}

		report, err := uc.reportRepo.GetByID(ctx, chat.ItemID)
		if err != nil {
			return nil, err
		}
		fields := map[string]interface{}{
			"status":    input.ReportStatus,
			"updatedAt": time.Now(),
		}
		if err := uc.reportRepo.Patch(ctx, chat.ItemID, fields); err != nil {
			return nil, err
		}
		if err := uc.reportRepo.PatchMirror(ctx, report.UserID, chat.ItemID, fields); err != nil {
			log.Printf("QuickAction: report mirror patch failed for report %s: %v", chat.ItemID, err)
		}
		report.Status = input.ReportStatus
		uc.events.PublishReportUpdate(report)
	}

	return uc.SendMessage(ctx, adminID, chatID, SendMessageInput{Content: input.Message})
}

func isParticipant(chat *entity.Chat, userID string) bool {
	for _, p := range chat.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

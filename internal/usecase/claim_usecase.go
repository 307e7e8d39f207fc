package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"campusfind/internal/domain/entity"
	"campusfind/internal/domain/repository"
	"campusfind/internal/infrastructure/ratelimit"
	"campusfind/pkg/errors"
	"campusfind/pkg/imaging"
)

// ClaimUseCase coordinates claim and return submissions: the per-case chat,
// the case document with its mirrors, the report status transition and the
// notifications to both parties.
type ClaimUseCase struct {
	reportRepo    repository.ReportRepository
	claimRepo     repository.ClaimRepository
	returnRepo    repository.ReturnRepository
	chatRepo      repository.ChatRepository
	userRepo      repository.UserRepository
	notifications *NotificationUseCase
	events        EventPublisher
	rateLimiter   *ratelimit.RateLimiter
}

func NewClaimUseCase(
	reportRepo repository.ReportRepository,
	claimRepo repository.ClaimRepository,
	returnRepo repository.ReturnRepository,
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	notifications *NotificationUseCase,
	events EventPublisher,
	rateLimiter *ratelimit.RateLimiter,
) *ClaimUseCase {
	return &ClaimUseCase{
		reportRepo:    reportRepo,
		claimRepo:     claimRepo,
		returnRepo:    returnRepo,
		chatRepo:      chatRepo,
		userRepo:      userRepo,
		notifications: notifications,
		events:        events,
		rateLimiter:   rateLimiter,
	}
}

// BuildChatID derives the chat id for a user pair on one item. The pair is
// sorted first, so either side arrives at the same id and re-submissions reuse
// the existing chat.
func BuildChatID(userA, userB, reportID string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return pair[0] + "_" + pair[1] + "_" + reportID
}

type SubmitClaimInput struct {
	ContactInfo    string
	Proof          string
	AdditionalInfo string
}

func (uc *ClaimUseCase) SubmitClaim(ctx context.Context, claimantID, reportID string, input SubmitClaimInput) (*entity.Claim, error) {
	allowed, waitTime := uc.rateLimiter.Allow(claimantID, "submit_case")
	if !allowed {
		return nil, errors.TooManyRequests("Too many submissions. Please wait before trying again", waitTime)
	}

	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Type != entity.ReportTypeFound {
		return nil, errors.BadRequest("Claims can only be submitted on found items", nil)
	}
	if report.UserID == claimantID {
		return nil, errors.Forbidden("You cannot claim an item you reported", nil)
	}

	claimant, err := uc.userRepo.GetByID(ctx, claimantID)
	if err != nil {
		return nil, err
	}

	chatID, err := uc.ensureChat(ctx, claimant, report)
	if err != nil {
		return nil, err
	}

	// The submission message is appended on every call, even when the claim
	// itself later fails: a retried submission shows up twice in the chat.
	submission := &entity.Message{
		ChatID:     chatID,
		SenderID:   claimantID,
		SenderName: claimant.DisplayName,
		Content: fmt.Sprintf("Claim submitted for %q.\nContact: %s\nProof of ownership: %s",
			report.ItemName, input.ContactInfo, input.Proof),
		Type:      entity.MessageTypeSubmission,
		Timestamp: time.Now(),
	}
	if err := uc.appendMessage(ctx, chatID, report.UserID, submission); err != nil {
		return nil, err
	}

	claim := &entity.Claim{
		ReportID:       reportID,
		ClaimantID:     claimantID,
		ClaimantName:   claimant.DisplayName,
		ContactInfo:    input.ContactInfo,
		Proof:          input.Proof,
		AdditionalInfo: input.AdditionalInfo,
		Status:         entity.CaseStatusPending,
		ChatID:         chatID,
	}
	if err := uc.claimRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	if err := uc.claimRepo.CreateOwnerMirror(ctx, report.UserID, claim); err != nil {
		log.Printf("SubmitClaim: owner mirror failed for claim %s: %v", claim.ID, err)
	}
	if err := uc.claimRepo.UpsertClaimantMirror(ctx, claimantID, claim, nil); err != nil {
		log.Printf("SubmitClaim: claimant mirror failed for claim %s: %v", claim.ID, err)
	}

	statusFields := map[string]interface{}{
		"status": entity.ReportStatusClaimPending,
		"chatId": chatID,
	}
	if err := uc.reportRepo.Patch(ctx, reportID, statusFields); err != nil {
		return nil, err
	}
	if err := uc.reportRepo.PatchMirror(ctx, report.UserID, reportID, statusFields); err != nil {
		log.Printf("SubmitClaim: report mirror patch failed for report %s: %v", reportID, err)
	}

	uc.notifications.Notify(ctx, claimantID, &entity.Notification{
		Message:  fmt.Sprintf("Your claim for %q has been submitted and is awaiting verification.", report.ItemName),
		Type:     entity.NotificationClaimSubmitted,
		ReportID: reportID,
		ClaimID:  claim.ID,
		ChatID:   chatID,
		ItemName: report.ItemName,
		ItemType: report.Type,
	})
	uc.notifications.Notify(ctx, report.UserID, &entity.Notification{
		Message:  fmt.Sprintf("%s submitted a claim for %q.", claimant.DisplayName, report.ItemName),
		Type:     entity.NotificationClaimSubmitted,
		ReportID: reportID,
		ClaimID:  claim.ID,
		ChatID:   chatID,
		ItemName: report.ItemName,
		ItemType: report.Type,
	})

	return claim, nil
}

type SubmitReturnInput struct {
	ContactInfo string
	Description string
	ImageBase64 string
}

func (uc *ClaimUseCase) SubmitReturn(ctx context.Context, returnerID, reportID string, input SubmitReturnInput) (*entity.Return, error) {
	allowed, waitTime := uc.rateLimiter.Allow(returnerID, "submit_case")
	if !allowed {
		return nil, errors.TooManyRequests("Too many submissions. Please wait before trying again", waitTime)
	}

	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Type != entity.ReportTypeLost {
		return nil, errors.BadRequest("Returns can only be submitted on lost items", nil)
	}
	if report.UserID == returnerID {
		return nil, errors.Forbidden("You cannot return an item you reported", nil)
	}

	returner, err := uc.userRepo.GetByID(ctx, returnerID)
	if err != nil {
		return nil, err
	}

	image := input.ImageBase64
	if image != "" {
		image, err = imaging.Normalize(image)
		if err != nil {
			return nil, err
		}
	}

	chatID, err := uc.ensureChat(ctx, returner, report)
	if err != nil {
		return nil, err
	}

	submission := &entity.Message{
		ChatID:     chatID,
		SenderID:   returnerID,
		SenderName: returner.DisplayName,
		Content: fmt.Sprintf("Return submitted for %q.\nContact: %s\n%s",
			report.ItemName, input.ContactInfo, input.Description),
		Type:      entity.MessageTypeSubmission,
		Timestamp: time.Now(),
	}
	if err := uc.appendMessage(ctx, chatID, report.UserID, submission); err != nil {
		return nil, err
	}

	if image != "" {
		photo := &entity.Message{
			ChatID:      chatID,
			SenderID:    returnerID,
			SenderName:  returner.DisplayName,
			Content:     "Photo of the found item",
			ImageBase64: image,
			Type:        entity.MessageTypeReturnImage,
			Timestamp:   time.Now(),
		}
		if err := uc.appendMessage(ctx, chatID, report.UserID, photo); err != nil {
			log.Printf("SubmitReturn: failed to append photo message in chat %s: %v", chatID, err)
		}
	}

	ret := &entity.Return{
		ReportID:     reportID,
		ReturnerID:   returnerID,
		ReturnerName: returner.DisplayName,
		ContactInfo:  input.ContactInfo,
		Description:  input.Description,
		ImageBase64:  image,
		Status:       entity.CaseStatusPending,
		ChatID:       chatID,
	}
	if err := uc.returnRepo.Create(ctx, ret); err != nil {
		return nil, err
	}

	if err := uc.returnRepo.CreateOwnerMirror(ctx, report.UserID, ret); err != nil {
		log.Printf("SubmitReturn: owner mirror failed for return %s: %v", ret.ID, err)
	}
	if err := uc.returnRepo.UpsertReturnerMirror(ctx, returnerID, ret, nil); err != nil {
		log.Printf("SubmitReturn: returner mirror failed for return %s: %v", ret.ID, err)
	}

	statusFields := map[string]interface{}{
		"status": entity.ReportStatusReturnPending,
		"chatId": chatID,
	}
	if err := uc.reportRepo.Patch(ctx, reportID, statusFields); err != nil {
		return nil, err
	}
	if err := uc.reportRepo.PatchMirror(ctx, report.UserID, reportID, statusFields); err != nil {
		log.Printf("SubmitReturn: report mirror patch failed for report %s: %v", reportID, err)
	}

	uc.notifications.Notify(ctx, returnerID, &entity.Notification{
		Message:  fmt.Sprintf("Your return submission for %q is awaiting verification.", report.ItemName),
		Type:     entity.NotificationReturnSubmitted,
		ReportID: reportID,
		ReturnID: ret.ID,
		ChatID:   chatID,
		ItemName: report.ItemName,
		ItemType: report.Type,
	})
	uc.notifications.Notify(ctx, report.UserID, &entity.Notification{
		Message:  fmt.Sprintf("%s may have found your %q.", returner.DisplayName, report.ItemName),
		Type:     entity.NotificationReturnSubmitted,
		ReportID: reportID,
		ReturnID: ret.ID,
		ChatID:   chatID,
		ItemName: report.ItemName,
		ItemType: report.Type,
	})

	return ret, nil
}

// ensureChat gets-or-creates the deterministic chat between the submitter and
// the report owner, seeding a new chat with one system message.
func (uc *ClaimUseCase) ensureChat(ctx context.Context, submitter *entity.User, report *entity.Report) (string, error) {
	chatID := BuildChatID(submitter.ID, report.UserID, report.ID)

	_, err := uc.chatRepo.GetByID(ctx, chatID)
	if err == nil {
		return chatID, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return "", err
	}

	chat := &entity.Chat{
		ID:           chatID,
		Participants: []string{submitter.ID, report.UserID},
		ItemID:       report.ID,
		ItemName:     report.ItemName,
		ItemType:     report.Type,
		UnreadCount: map[string]int{
			submitter.ID:  0,
			report.UserID: 0,
		},
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return "", err
	}

	opening := &entity.Message{
		ChatID:   chatID,
		SenderID: entity.SystemSenderID,
		Content: fmt.Sprintf("Chat opened for %q. Use this conversation to coordinate the handover.",
			report.ItemName),
		Type:      entity.MessageTypeSystem,
		Timestamp: time.Now(),
	}
	if err := uc.appendMessage(ctx, chatID, report.UserID, opening); err != nil {
		log.Printf("ensureChat: failed to seed system message in chat %s: %v", chatID, err)
	}

	return chatID, nil
}

// appendMessage persists a message, refreshes the chat preview, bumps the
// recipient's unread counter for non-system messages, and publishes the event.
func (uc *ClaimUseCase) appendMessage(ctx context.Context, chatID, recipientID string, message *entity.Message) error {
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return err
	}
	if err := uc.chatRepo.SetLastMessage(ctx, chatID, message.Content, message.Timestamp); err != nil {
		log.Printf("appendMessage: failed to update chat preview for %s: %v", chatID, err)
	}
	if message.Type != entity.MessageTypeSystem && recipientID != message.SenderID {
		if err := uc.chatRepo.IncrementUnread(ctx, chatID, recipientID); err != nil {
			log.Printf("appendMessage: failed to bump unread for %s in chat %s: %v", recipientID, chatID, err)
		}
	}
	uc.events.PublishMessage(chatID, message)
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"campusfind/internal/domain/entity"
	"campusfind/internal/domain/repository"
	"campusfind/pkg/logger"
)

// AdminUseCase handles claim/return verification and the admin side of chats.
type AdminUseCase struct {
	reportRepo    repository.ReportRepository
	claimRepo     repository.ClaimRepository
	returnRepo    repository.ReturnRepository
	chatRepo      repository.ChatRepository
	userRepo      repository.UserRepository
	notifications *NotificationUseCase
	events        EventPublisher
}

func NewAdminUseCase(
	reportRepo repository.ReportRepository,
	claimRepo repository.ClaimRepository,
	returnRepo repository.ReturnRepository,
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	notifications *NotificationUseCase,
	events EventPublisher,
) *AdminUseCase {
	return &AdminUseCase{
		reportRepo:    reportRepo,
		claimRepo:     claimRepo,
		returnRepo:    returnRepo,
		chatRepo:      chatRepo,
		userRepo:      userRepo,
		notifications: notifications,
		events:        events,
	}
}

func (uc *AdminUseCase) VerifyClaim(ctx context.Context, adminID, reportID, claimID, adminNotes string) (*entity.Claim, error) {
	return uc.resolveClaim(ctx, adminID, reportID, claimID, entity.CaseStatusVerified, adminNotes)
}

func (uc *AdminUseCase) RejectClaim(ctx context.Context, adminID, reportID, claimID, adminNotes string) (*entity.Claim, error) {
	return uc.resolveClaim(ctx, adminID, reportID, claimID, entity.CaseStatusRejected, adminNotes)
}

func (uc *AdminUseCase) resolveClaim(ctx context.Context, adminID, reportID, claimID, newStatus, adminNotes string) (*entity.Claim, error) {
	claim, err := uc.claimRepo.GetByID(ctx, reportID, claimID)
	if err != nil {
		return nil, err
	}
	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	resolvedAt := time.Now()
	err = uc.claimRepo.Resolve(ctx, repository.CaseResolution{
		ReportID:   reportID,
		CaseID:     claimID,
		Status:     newStatus,
		AdminNotes: adminNotes,
		ResolvedBy: adminID,
		ResolvedAt: resolvedAt,
	})
	if err != nil {
		return nil, err
	}

	claim.Status = newStatus
	claim.AdminNotes = adminNotes
	claim.ResolvedBy = adminID
	claim.ResolvedAt = &resolvedAt

	caseFields := map[string]interface{}{
		"status":     newStatus,
		"adminNotes": adminNotes,
		"resolvedAt": resolvedAt,
		"resolvedBy": adminID,
	}
	if err := uc.claimRepo.PatchOwnerMirror(ctx, report.UserID, reportID, claimID, caseFields); err != nil {
		logger.Warn("resolveClaim: owner claim mirror failed for claim %s: %v", claimID, err)
	}
	if err := uc.claimRepo.UpsertClaimantMirror(ctx, claim.ClaimantID, claim, caseFields); err != nil {
		logger.Warn("resolveClaim: claimant mirror failed for claim %s: %v", claimID, err)
	}

	verified := newStatus == entity.CaseStatusVerified
	if verified {
		reportFields := map[string]interface{}{
			"status":          entity.ReportStatusResolved,
			"resolvedAt":      resolvedAt,
			"resolvedBy":      adminID,
			"resolvedClaimId": claimID,
			"updatedAt":       resolvedAt,
		}
		if err := uc.reportRepo.PatchMirror(ctx, report.UserID, reportID, reportFields); err != nil {
			logger.Warn("resolveClaim: report mirror patch failed for report %s: %v", reportID, err)
		}
		report.Status = entity.ReportStatusResolved
		report.ResolvedClaimID = claimID
		uc.events.PublishReportUpdate(report)
	}

	notifType := entity.NotificationClaimVerified
	claimantMsg := fmt.Sprintf("Your claim for %q has been verified. Please coordinate the handover in chat.", report.ItemName)
	ownerMsg := fmt.Sprintf("The claim for your reported item %q has been verified.", report.ItemName)
	if !verified {
		notifType = entity.NotificationClaimRejected
		claimantMsg = fmt.Sprintf("Your claim for %q was rejected.", report.ItemName)
		if adminNotes != "" {
			claimantMsg += " Reason: " + adminNotes
		}
		ownerMsg = fmt.Sprintf("A claim for your reported item %q was rejected.", report.ItemName)
	}

	uc.notifications.Notify(ctx, claim.ClaimantID, &entity.Notification{
		Message:  claimantMsg,
		Type:     notifType,
		ReportID: reportID,
		ClaimID:  claimID,
		ChatID:   claim.ChatID,
		ItemName: report.ItemName,
		ItemType: report.Type,
	})
	uc.notifications.Notify(ctx, report.UserID, &entity.Notification{
		Message:  ownerMsg,
		Type:     notifType,
		ReportID: reportID,
		ClaimID:  claimID,
		ChatID:   claim.ChatID,
		ItemName: report.ItemName,
		ItemType: report.Type,
	})

	if claim.ChatID != "" {
		content := fmt.Sprintf("An admin has verified this claim for %q.", report.ItemName)
		if !verified {
			content = fmt.Sprintf("An admin has rejected this claim for %q.", report.ItemName)
		}
		uc.sendSystemMessage(ctx, claim.ChatID, content)
	}

	return claim, nil
}

func (uc *AdminUseCase) VerifyReturn(ctx context.Context, adminID, reportID, returnID, adminNotes string) (*entity.Return, error) {
	return uc.resolveReturn(ctx, adminID, reportID, returnID, entity.CaseStatusVerified, adminNotes)
}

func (uc *AdminUseCase) RejectReturn(ctx context.Context, adminID, reportID, returnID, adminNotes string) (*entity.Return, error) {
	return uc.resolveReturn(ctx, adminID, reportID, returnID, entity.CaseStatusRejected, adminNotes)
}

func (uc *AdminUseCase) resolveReturn(ctx context.Context, adminID, reportID, returnID, newStatus, adminNotes string) (*entity.Return, error) {
	ret, err := uc.returnRepo.GetByID(ctx, reportID, returnID)
	if err != nil {
		return nil, err
	}
	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	resolvedAt := time.Now()
	err = uc.returnRepo.Resolve(ctx, repository.CaseResolution{
		ReportID:   reportID,
		CaseID:     returnID,
		Status:     newStatus,
		AdminNotes: adminNotes,
		ResolvedBy: adminID,
		ResolvedAt: resolvedAt,
	})
	if err != nil {
		return nil, err
	}

	ret.Status = newStatus
	ret.AdminNotes = adminNotes
	ret.ResolvedBy = adminID
	ret.ResolvedAt = &resolvedAt

	caseFields := map[string]interface{}{
		"status":     newStatus,
		"adminNotes": adminNotes,
		"resolvedAt": resolvedAt,
		"resolvedBy": adminID,
	}
	if err := uc.returnRepo.PatchOwnerMirror(ctx, report.UserID, reportID, returnID, caseFields); err != nil {
		logger.Warn("resolveReturn: owner return mirror failed for return %s: %v", returnID, err)
	}
	if err := uc.returnRepo.UpsertReturnerMirror(ctx, ret.ReturnerID, ret, caseFields); err != nil {
		logger.Warn("resolveReturn: returner mirror failed for return %s: %v", returnID, err)
	}

	verified := newStatus == entity.CaseStatusVerified
	if verified {
		reportFields := map[string]interface{}{
			"status":           entity.ReportStatusReturned,
			"resolvedAt":       resolvedAt,
			"resolvedBy":       adminID,
			"resolvedReturnId": returnID,
			"updatedAt":        resolvedAt,
		}
		if err := uc.reportRepo.PatchMirror(ctx, report.UserID, reportID, reportFields); err != nil {
			logger.Warn("resolveReturn: report mirror patch failed for report %s: %v", reportID, err)
		}
		report.Status = entity.ReportStatusReturned
		report.ResolvedReturnID = returnID
		uc.events.PublishReportUpdate(report)
	}

	notifType := entity.NotificationReturnVerified
	returnerMsg := fmt.Sprintf("Your return submission for %q has been verified. Thank you!", report.ItemName)
	ownerMsg := fmt.Sprintf("Good news: the return of your %q has been verified.", report.ItemName)
	if !verified {
		notifType = entity.NotificationReturnRejected
		returnerMsg = fmt.Sprintf("Your return submission for %q was rejected.", report.ItemName)
		if adminNotes != "" {
			returnerMsg += " Reason: " + adminNotes
		}
		ownerMsg = fmt.Sprintf("A return submission for your %q was rejected.", report.ItemName)
	}

	uc.notifications.Notify(ctx, ret.ReturnerID, &entity.Notification{
		Message:  returnerMsg,
		Type:     notifType,
		ReportID: reportID,
		ReturnID: returnID,
		ChatID:   ret.ChatID,
		ItemName: report.ItemName,
		ItemType: report.Type,
	})
	uc.notifications.Notify(ctx, report.UserID, &entity.Notification{
		Message:  ownerMsg,
		Type:     notifType,
		ReportID: reportID,
		ReturnID: returnID,
		ChatID:   ret.ChatID,
		ItemName: report.ItemName,
		ItemType: report.Type,
	})

	if ret.ChatID != "" {
		content := fmt.Sprintf("An admin has verified this return for %q.", report.ItemName)
		if !verified {
			content = fmt.Sprintf("An admin has rejected this return for %q.", report.ItemName)
		}
		uc.sendSystemMessage(ctx, ret.ChatID, content)
	}

	return ret, nil
}

// JoinChat adds the admin to a conversation. Idempotent: if an admin already
// joined, nothing is written and no notifications go out.
func (uc *AdminUseCase) JoinChat(ctx context.Context, adminID, chatID string) (*entity.Chat, error) {
	admin, err := uc.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	joined, err := uc.chatRepo.AddAdminParticipant(ctx, chatID, adminID)
	if err != nil {
		return nil, err
	}
	if !joined {
		return chat, nil
	}

	uc.sendSystemMessage(ctx, chatID, fmt.Sprintf("Admin %s joined the conversation.", admin.DisplayName))

	for _, participantID := range chat.Participants {
		uc.notifications.Notify(ctx, participantID, &entity.Notification{
			Message:  "An admin has joined your conversation to help resolve the case.",
			Type:     entity.NotificationAdminJoined,
			ChatID:   chatID,
			ItemName: chat.ItemName,
			ItemType: chat.ItemType,
		})
	}

	chat.Participants = append(chat.Participants, adminID)
	chat.AdminJoined = true

	return chat, nil
}

func (uc *AdminUseCase) ListClaims(ctx context.Context, status string, limit, offset int) ([]*entity.Claim, int64, error) {
	if status == "" {
		status = entity.CaseStatusPending
	}
	return uc.claimRepo.ListByStatus(ctx, status, limit, offset)
}

func (uc *AdminUseCase) ListReturns(ctx context.Context, status string, limit, offset int) ([]*entity.Return, int64, error) {
	if status == "" {
		status = entity.CaseStatusPending
	}
	return uc.returnRepo.ListByStatus(ctx, status, limit, offset)
}

func (uc *AdminUseCase) sendSystemMessage(ctx context.Context, chatID, content string) {
	message := &entity.Message{
		ChatID:    chatID,
		SenderID:  entity.SystemSenderID,
		Content:   content,
		Type:      entity.MessageTypeSystem,
		Timestamp: time.Now(),
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		logger.Warn("sendSystemMessage: failed in chat %s: %v", chatID, err)
		return
	}
	if err := uc.chatRepo.SetLastMessage(ctx, chatID, content, message.Timestamp); err != nil {
		logger.Warn("sendSystemMessage: failed to update preview for chat %s: %v", chatID, err)
	}
	uc.events.PublishMessage(chatID, message)
}

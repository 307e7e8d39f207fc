package usecase

import (
	"context"
	"log"

	"campusfind/internal/domain/entity"
	"campusfind/internal/domain/repository"
	"campusfind/internal/infrastructure/ratelimit"
	"campusfind/pkg/errors"
	"campusfind/pkg/imaging"
)

type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	userRepo    repository.UserRepository
	events      EventPublisher
	rateLimiter *ratelimit.RateLimiter
}

func NewReportUseCase(
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	events EventPublisher,
	rateLimiter *ratelimit.RateLimiter,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:  reportRepo,
		userRepo:    userRepo,
		events:      events,
		rateLimiter: rateLimiter,
	}
}

type SubmitReportInput struct {
	Type          string
	Category      string
	ItemName      string
	Location      string
	Date          string
	Description   string
	ContactEmail  string
	ContactNumber string
	IDTag         string
	OwnerTag      string
	ImageBase64   string
}

func (uc *ReportUseCase) SubmitReport(ctx context.Context, userID string, input SubmitReportInput) (*entity.Report, error) {
	if input.Type != entity.ReportTypeLost && input.Type != entity.ReportTypeFound {
		return nil, errors.BadRequest("Report type must be lost or found", nil)
	}
	if input.Category == "" {
		return nil, errors.BadRequest("Category is required", nil)
	}

	allowed, waitTime := uc.rateLimiter.Allow(userID, "submit_report")
	if !allowed {
		return nil, errors.TooManyRequests("Too many reports submitted. Please wait", waitTime)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
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

	report := &entity.Report{
		Type:          input.Type,
		Category:      input.Category,
		ItemName:      input.ItemName,
		Location:      input.Location,
		Date:          input.Date,
		Description:   input.Description,
		ContactEmail:  input.ContactEmail,
		ContactNumber: input.ContactNumber,
		IDTag:         input.IDTag,
		OwnerTag:      input.OwnerTag,
		ImageBase64:   image,
		UserID:        userID,
		UserEmail:     user.Email,
		UserName:      user.DisplayName,
		Status:        entity.ReportStatusPending,
	}

	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (uc *ReportUseCase) GetReport(ctx context.Context, id string) (*entity.Report, error) {
	return uc.reportRepo.GetByID(ctx, id)
}

type ListReportsInput struct {
	Type     string
	Category string
	Status   string
	Limit    int
	Offset   int
}

func (uc *ReportUseCase) ListReports(ctx context.Context, input ListReportsInput) ([]*entity.Report, int64, error) {
	filter := map[string]interface{}{}
	if input.Type != "" {
		filter["type"] = input.Type
	}
	if input.Category != "" {
		filter["category"] = input.Category
	}
	if input.Status != "" {
		filter["status"] = input.Status
	}

	return uc.reportRepo.List(ctx, filter, input.Limit, input.Offset)
}

func (uc *ReportUseCase) ListMyReports(ctx context.Context, userID string, limit, offset int) ([]*entity.Report, int64, error) {
	return uc.reportRepo.ListByUserID(ctx, userID, limit, offset)
}

type UpdateReportInput struct {
	Category      string
	ItemName      string
	Location      string
	Date          string
	Description   string
	ContactEmail  string
	ContactNumber string
	IDTag         string
	OwnerTag      string
	ImageBase64   string
}

func (uc *ReportUseCase) UpdateReport(ctx context.Context, userID, reportID string, input UpdateReportInput) (*entity.Report, error) {
	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != userID {
		return nil, errors.Forbidden("You can only update your own reports", nil)
	}

	fields := map[string]interface{}{}
	if input.Category != "" {
		fields["category"] = input.Category
		report.Category = input.Category
	}
	if input.ItemName != "" {
		fields["itemName"] = input.ItemName
		report.ItemName = input.ItemName
	}
	if input.Location != "" {
		fields["location"] = input.Location
		report.Location = input.Location
	}
	if input.Date != "" {
		fields["date"] = input.Date
		report.Date = input.Date
	}
	if input.Description != "" {
		fields["description"] = input.Description
		report.Description = input.Description
	}
	if input.ContactEmail != "" {
		fields["contactEmail"] = input.ContactEmail
		report.ContactEmail = input.ContactEmail
	}
	if input.ContactNumber != "" {
		fields["contactNumber"] = input.ContactNumber
		report.ContactNumber = input.ContactNumber
	}
	if input.IDTag != "" {
		fields["idTag"] = input.IDTag
		report.IDTag = input.IDTag
	}
	if input.OwnerTag != "" {
		fields["ownerTag"] = input.OwnerTag
		report.OwnerTag = input.OwnerTag
	}
	if input.ImageBase64 != "" {
		image, err := imaging.Normalize(input.ImageBase64)
		if err != nil {
			return nil, err
		}
		fields["imageBase64"] = image
		report.ImageBase64 = image
	}

	if len(fields) == 0 {
		return report, nil
	}

	if err := uc.reportRepo.Patch(ctx, reportID, fields); err != nil {
		return nil, err
	}

	// Mirror is best-effort; the global document is the source of truth.
	if err := uc.reportRepo.PatchMirror(ctx, userID, reportID, fields); err != nil {
		log.Printf("UpdateReport: mirror patch failed for report %s: %v", reportID, err)
	}

	uc.events.PublishReportUpdate(report)

	return report, nil
}

func (uc *ReportUseCase) DeleteReport(ctx context.Context, userID, reportID string, isAdmin bool) error {
	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}
	if report.UserID != userID && !isAdmin {
		return errors.Forbidden("You can only delete your own reports", nil)
	}

	if err := uc.reportRepo.Delete(ctx, reportID); err != nil {
		return err
	}

	if err := uc.reportRepo.DeleteMirror(ctx, report.UserID, reportID); err != nil {
		log.Printf("DeleteReport: mirror delete failed for report %s: %v", reportID, err)
	}

	return nil
}

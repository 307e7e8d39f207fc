package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campusfind/internal/domain/entity"
	"campusfind/internal/domain/repository"
	"campusfind/pkg/errors"
)

type firestoreReportRepository struct {
	client *firestore.Client
}

func NewFirestoreReportRepository(client *firestore.Client) repository.ReportRepository {
	return &firestoreReportRepository{
		client: client,
	}
}

func (r *firestoreReportRepository) Create(ctx context.Context, report *entity.Report) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}

	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now

	globalRef := r.client.Collection("reports").Doc(report.ID)
	mirrorRef := r.client.Collection("users").Doc(report.UserID).Collection("reports").Doc(report.ID)

	// Both copies are committed together so their status can never diverge at
	// creation time.
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(globalRef, report); err != nil {
			return err
		}
		return tx.Set(mirrorRef, report)
	})
	if err != nil {
		return errors.Internal("Failed to create report", err)
	}

	return nil
}

func (r *firestoreReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	doc, err := r.client.Collection("reports").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Report", err)
		}
		return nil, errors.Internal("Failed to get report", err)
	}

	var report entity.Report
	if err := doc.DataTo(&report); err != nil {
		return nil, errors.Internal("Failed to parse report data", err)
	}
	report.ID = doc.Ref.ID

	return &report, nil
}

func (r *firestoreReportRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Report, int64, error) {
	query := r.client.Collection("reports").Query
	for field, value := range filter {
		query = query.Where(field, "==", value)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while listing reports: %v", err)
		return nil, 0, errors.Internal("Failed to list reports", err)
	}

	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var reports []*entity.Report
	for _, doc := range allDocs[start:end] {
		var report entity.Report
		if err := doc.DataTo(&report); err != nil {
			log.Printf("Error parsing report data %s: %v", doc.Ref.ID, err)
			continue
		}
		report.ID = doc.Ref.ID
		reports = append(reports, &report)
	}

	return reports, total, nil
}

func (r *firestoreReportRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Report, int64, error) {
	query := r.client.Collection("users").Doc(userID).Collection("reports").OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count user reports", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var reports []*entity.Report

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating reports for user %s: %v", userID, err)
			return nil, 0, errors.Internal("Failed to iterate user reports", err)
		}

		var report entity.Report
		if err := doc.DataTo(&report); err != nil {
			log.Printf("Error parsing report data for user %s: %v", userID, err)
			return nil, 0, errors.Internal("Failed to parse report data", err)
		}
		report.ID = doc.Ref.ID

		reports = append(reports, &report)
	}

	return reports, total, nil
}

func (r *firestoreReportRepository) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updatedAt"] = time.Now()

	// Update (not Set+MergeAll) so patching a deleted report fails
	// instead of resurrecting a partial document.
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	_, err := r.client.Collection("reports").Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Report", err)
		}
		return errors.Internal("Failed to patch report", err)
	}

	return nil
}

func (r *firestoreReportRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("reports").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete report", err)
	}

	return nil
}

func (r *firestoreReportRepository) PatchMirror(ctx context.Context, userID, reportID string, fields map[string]interface{}) error {
	mirrorRef := r.client.Collection("users").Doc(userID).Collection("reports").Doc(reportID)

	doc, err := mirrorRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Report mirror", err)
		}
		return errors.Internal("Failed to get report mirror", err)
	}
	if !doc.Exists() {
		return errors.NotFound("Report mirror", nil)
	}

	fields["updatedAt"] = time.Now()
	_, err = mirrorRef.Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to patch report mirror", err)
	}

	return nil
}

func (r *firestoreReportRepository) DeleteMirror(ctx context.Context, userID, reportID string) error {
	_, err := r.client.Collection("users").Doc(userID).Collection("reports").Doc(reportID).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete report mirror", err)
	}

	return nil
}

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

type firestoreReturnRepository struct {
	client *firestore.Client
}

func NewFirestoreReturnRepository(client *firestore.Client) repository.ReturnRepository {
	return &firestoreReturnRepository{
		client: client,
	}
}

func (r *firestoreReturnRepository) Create(ctx context.Context, ret *entity.Return) error {
	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	ret.CreatedAt = time.Now()

	_, err := r.client.Collection("reports").Doc(ret.ReportID).Collection("returns").Doc(ret.ID).Set(ctx, ret)
	if err != nil {
		return errors.Internal("Failed to create return", err)
	}

	return nil
}

func (r *firestoreReturnRepository) GetByID(ctx context.Context, reportID, returnID string) (*entity.Return, error) {
	doc, err := r.client.Collection("reports").Doc(reportID).Collection("returns").Doc(returnID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Return", err)
		}
		return nil, errors.Internal("Failed to get return", err)
	}

	var ret entity.Return
	if err := doc.DataTo(&ret); err != nil {
		return nil, errors.Internal("Failed to parse return data", err)
	}
	ret.ID = doc.Ref.ID

	return &ret, nil
}

func (r *firestoreReturnRepository) ListByStatus(ctx context.Context, retStatus string, limit, offset int) ([]*entity.Return, int64, error) {
	query := r.client.CollectionGroup("returns").Where("status", "==", retStatus)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while listing returns with status %s: %v", retStatus, err)
		return nil, 0, errors.Internal("Failed to list returns", err)
	}

	var returns []*entity.Return
	for _, doc := range allDocs {
		if doc.Ref.Parent.Parent.Parent.Parent != nil {
			continue
		}
		var ret entity.Return
		if err := doc.DataTo(&ret); err != nil {
			log.Printf("Error parsing return data %s: %v", doc.Ref.ID, err)
			continue
		}
		ret.ID = doc.Ref.ID
		returns = append(returns, &ret)
	}

	total := int64(len(returns))

	start := offset
	if start > len(returns) {
		start = len(returns)
	}
	end := len(returns)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return returns[start:end], total, nil
}

func (r *firestoreReturnRepository) Resolve(ctx context.Context, res repository.CaseResolution) error {
	returnRef := r.client.Collection("reports").Doc(res.ReportID).Collection("returns").Doc(res.CaseID)
	reportRef := r.client.Collection("reports").Doc(res.ReportID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(returnRef)
		if err != nil {
			return err
		}

		var ret entity.Return
		if err := doc.DataTo(&ret); err != nil {
			return err
		}
		if ret.Status != entity.CaseStatusPending {
			return errors.Conflict("Return has already been resolved")
		}

		if err := tx.Set(returnRef, map[string]interface{}{
			"status":     res.Status,
			"adminNotes": res.AdminNotes,
			"resolvedAt": res.ResolvedAt,
			"resolvedBy": res.ResolvedBy,
		}, firestore.MergeAll); err != nil {
			return err
		}

		if res.Status != entity.CaseStatusVerified {
			return nil
		}

		return tx.Set(reportRef, map[string]interface{}{
			"status":           entity.ReportStatusReturned,
			"resolvedAt":       res.ResolvedAt,
			"resolvedBy":       res.ResolvedBy,
			"resolvedReturnId": res.CaseID,
			"updatedAt":        res.ResolvedAt,
		}, firestore.MergeAll)
	})

	if err != nil {
		if errors.Is(err, "CONFLICT") {
			return err
		}
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Return", err)
		}
		return errors.Internal("Failed to resolve return", err)
	}

	return nil
}

func (r *firestoreReturnRepository) CreateOwnerMirror(ctx context.Context, ownerID string, ret *entity.Return) error {
	_, err := r.client.Collection("users").Doc(ownerID).
		Collection("reports").Doc(ret.ReportID).
		Collection("returns").Doc(ret.ID).Set(ctx, ret)
	if err != nil {
		return errors.Internal("Failed to mirror return", err)
	}

	return nil
}

func (r *firestoreReturnRepository) PatchOwnerMirror(ctx context.Context, ownerID, reportID, returnID string, fields map[string]interface{}) error {
	mirrorRef := r.client.Collection("users").Doc(ownerID).
		Collection("reports").Doc(reportID).
		Collection("returns").Doc(returnID)

	doc, err := mirrorRef.Get(ctx)
	if err != nil || !doc.Exists() {
		return errors.NotFound("Return mirror", err)
	}

	_, err = mirrorRef.Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to patch return mirror", err)
	}

	return nil
}

func (r *firestoreReturnRepository) UpsertReturnerMirror(ctx context.Context, returnerID string, ret *entity.Return, fields map[string]interface{}) error {
	mirrorRef := r.client.Collection("users").Doc(returnerID).Collection("returns").Doc(ret.ID)

	if fields == nil {
		_, err := mirrorRef.Set(ctx, ret)
		if err != nil {
			return errors.Internal("Failed to mirror return for returner", err)
		}
		return nil
	}

	_, err := mirrorRef.Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to patch returner return mirror", err)
	}

	return nil
}

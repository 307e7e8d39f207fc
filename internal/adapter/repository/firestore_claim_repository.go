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

type firestoreClaimRepository struct {
	client *firestore.Client
}

func NewFirestoreClaimRepository(client *firestore.Client) repository.ClaimRepository {
	return &firestoreClaimRepository{
		client: client,
	}
}

func (r *firestoreClaimRepository) Create(ctx context.Context, claim *entity.Claim) error {
	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	claim.CreatedAt = time.Now()

	_, err := r.client.Collection("reports").Doc(claim.ReportID).Collection("claims").Doc(claim.ID).Set(ctx, claim)
	if err != nil {
		return errors.Internal("Failed to create claim", err)
	}

	return nil
}

func (r *firestoreClaimRepository) GetByID(ctx context.Context, reportID, claimID string) (*entity.Claim, error) {
	doc, err := r.client.Collection("reports").Doc(reportID).Collection("claims").Doc(claimID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Claim", err)
		}
		return nil, errors.Internal("Failed to get claim", err)
	}

	var claim entity.Claim
	if err := doc.DataTo(&claim); err != nil {
		return nil, errors.Internal("Failed to parse claim data", err)
	}
	claim.ID = doc.Ref.ID

	return &claim, nil
}

func (r *firestoreClaimRepository) ListByStatus(ctx context.Context, claimStatus string, limit, offset int) ([]*entity.Claim, int64, error) {
	// Collection group query spans every report's claims subcollection. The
	// owner mirrors live under users/{uid}/reports/... and would match the
	// same group, so results are filtered down to global documents by path.
	query := r.client.CollectionGroup("claims").Where("status", "==", claimStatus)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while listing claims with status %s: %v", claimStatus, err)
		return nil, 0, errors.Internal("Failed to list claims", err)
	}

	var claims []*entity.Claim
	for _, doc := range allDocs {
		if doc.Ref.Parent.Parent.Parent.Parent != nil {
			continue
		}
		var claim entity.Claim
		if err := doc.DataTo(&claim); err != nil {
			log.Printf("Error parsing claim data %s: %v", doc.Ref.ID, err)
			continue
		}
		claim.ID = doc.Ref.ID
		claims = append(claims, &claim)
	}

	total := int64(len(claims))

	start := offset
	if start > len(claims) {
		start = len(claims)
	}
	end := len(claims)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return claims[start:end], total, nil
}

func (r *firestoreClaimRepository) Resolve(ctx context.Context, res repository.CaseResolution) error {
	claimRef := r.client.Collection("reports").Doc(res.ReportID).Collection("claims").Doc(res.CaseID)
	reportRef := r.client.Collection("reports").Doc(res.ReportID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(claimRef)
		if err != nil {
			return err
		}

		var claim entity.Claim
		if err := doc.DataTo(&claim); err != nil {
			return err
		}
		if claim.Status != entity.CaseStatusPending {
			return errors.Conflict("Claim has already been resolved")
		}

		if err := tx.Set(claimRef, map[string]interface{}{
			"status":     res.Status,
			"adminNotes": res.AdminNotes,
			"resolvedAt": res.ResolvedAt,
			"resolvedBy": res.ResolvedBy,
		}, firestore.MergeAll); err != nil {
			return err
		}

		// Rejection leaves the parent report untouched.
		if res.Status != entity.CaseStatusVerified {
			return nil
		}

		return tx.Set(reportRef, map[string]interface{}{
			"status":          entity.ReportStatusResolved,
			"resolvedAt":      res.ResolvedAt,
			"resolvedBy":      res.ResolvedBy,
			"resolvedClaimId": res.CaseID,
			"updatedAt":       res.ResolvedAt,
		}, firestore.MergeAll)
	})

	if err != nil {
		if errors.Is(err, "CONFLICT") {
			return err
		}
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Claim", err)
		}
		return errors.Internal("Failed to resolve claim", err)
	}

	return nil
}

func (r *firestoreClaimRepository) CreateOwnerMirror(ctx context.Context, ownerID string, claim *entity.Claim) error {
	_, err := r.client.Collection("users").Doc(ownerID).
		Collection("reports").Doc(claim.ReportID).
		Collection("claims").Doc(claim.ID).Set(ctx, claim)
	if err != nil {
		return errors.Internal("Failed to mirror claim", err)
	}

	return nil
}

func (r *firestoreClaimRepository) PatchOwnerMirror(ctx context.Context, ownerID, reportID, claimID string, fields map[string]interface{}) error {
	mirrorRef := r.client.Collection("users").Doc(ownerID).
		Collection("reports").Doc(reportID).
		Collection("claims").Doc(claimID)

	doc, err := mirrorRef.Get(ctx)
	if err != nil || !doc.Exists() {
		return errors.NotFound("Claim mirror", err)
	}

	_, err = mirrorRef.Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to patch claim mirror", err)
	}

	return nil
}

func (r *firestoreClaimRepository) UpsertClaimantMirror(ctx context.Context, claimantID string, claim *entity.Claim, fields map[string]interface{}) error {
	mirrorRef := r.client.Collection("users").Doc(claimantID).Collection("claims").Doc(claim.ID)

	if fields == nil {
		_, err := mirrorRef.Set(ctx, claim)
		if err != nil {
			return errors.Internal("Failed to mirror claim for claimant", err)
		}
		return nil
	}

	_, err := mirrorRef.Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to patch claimant claim mirror", err)
	}

	return nil
}

package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
)

type reviewRepository struct {
	col *firestore.CollectionRef
}

func NewReviewRepository(s *Store) repository.ReviewRepository {
	return &reviewRepository{col: s.client.Collection(colReviews)}
}

func decodeReview(snap *firestore.DocumentSnapshot) (*model.Review, error) {
	var rev model.Review
	if err := snap.DataTo(&rev); err != nil {
		return nil, apperror.NotFound("review")
	}
	rev.ID = snap.Ref.ID
	return &rev, nil
}

func (r *reviewRepository) Create(ctx context.Context, rev *model.Review) (*model.Review, error) {
	doc := r.col.NewDoc()
	if rev.ID != "" {
		doc = r.col.Doc(rev.ID)
	}

	toSave := *rev
	toSave.CreatedAt = time.Time{}
	toSave.UpdatedAt = time.Time{}
	if _, err := doc.Set(ctx, &toSave); err != nil {
		return nil, apperror.FromStore(err, "review")
	}
	return readDoc(ctx, doc, "review", decodeReview)
}

func (r *reviewRepository) Get(ctx context.Context, id string) (*model.Review, error) {
	if id == "" {
		return nil, apperror.InvalidArgument("review id is required")
	}
	return readDoc(ctx, r.col.Doc(id), "review", decodeReview)
}

func (r *reviewRepository) Update(ctx context.Context, rev *model.Review) (*model.Review, error) {
	if rev.ID == "" {
		return nil, apperror.InvalidArgument("review id is required")
	}

	// The appointment, professional and client references never change.
	doc := r.col.Doc(rev.ID)
	updates := []firestore.Update{
		{Path: "rating", Value: rev.Rating},
		{Path: "comment", Value: rev.Comment},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if _, err := doc.Update(ctx, updates); err != nil {
		return nil, apperror.FromStore(err, "review")
	}
	return readDoc(ctx, doc, "review", decodeReview)
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperror.InvalidArgument("review id is required")
	}
	if _, err := r.col.Doc(id).Delete(ctx); err != nil {
		return apperror.FromStore(err, "review")
	}
	return nil
}

func (r *reviewRepository) ListByProfessional(ctx context.Context, professionalID string) ([]*model.Review, error) {
	q := r.col.Where("professionalRef", "==", professionalID).OrderBy(fieldCreatedAt, firestore.Desc)
	return getAll(ctx, q, "review", decodeReview)
}

func (r *reviewRepository) ListByAppointment(ctx context.Context, appointmentID string) ([]*model.Review, error) {
	q := r.col.Where("appointmentRef", "==", appointmentID).OrderBy(fieldCreatedAt, firestore.Desc)
	return getAll(ctx, q, "review", decodeReview)
}

func (r *reviewRepository) WatchByProfessional(ctx context.Context, professionalID string) *repository.Subscription[[]*model.Review] {
	q := r.col.Where("professionalRef", "==", professionalID).OrderBy(fieldCreatedAt, firestore.Desc)
	return watch(ctx, q, "review", decodeReview)
}

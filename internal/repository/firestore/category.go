package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
)

type categoryRepository struct {
	col *firestore.CollectionRef
}

func NewCategoryRepository(s *Store) repository.CategoryRepository {
	return &categoryRepository{col: s.client.Collection(colCategories)}
}

func decodeCategory(snap *firestore.DocumentSnapshot) (*model.Category, error) {
	var cat model.Category
	if err := snap.DataTo(&cat); err != nil {
		return nil, apperror.NotFound("category")
	}
	cat.ID = snap.Ref.ID
	return &cat, nil
}

func (r *categoryRepository) Create(ctx context.Context, cat *model.Category) (*model.Category, error) {
	doc := r.col.NewDoc()
	if cat.ID != "" {
		doc = r.col.Doc(cat.ID)
	}

	toSave := *cat
	toSave.CreatedAt = time.Time{}
	toSave.UpdatedAt = time.Time{}
	if _, err := doc.Set(ctx, &toSave); err != nil {
		return nil, apperror.FromStore(err, "category")
	}
	return readDoc(ctx, doc, "category", decodeCategory)
}

func (r *categoryRepository) Get(ctx context.Context, id string) (*model.Category, error) {
	if id == "" {
		return nil, apperror.InvalidArgument("category id is required")
	}
	return readDoc(ctx, r.col.Doc(id), "category", decodeCategory)
}

func (r *categoryRepository) Update(ctx context.Context, cat *model.Category) (*model.Category, error) {
	if cat.ID == "" {
		return nil, apperror.InvalidArgument("category id is required")
	}

	doc := r.col.Doc(cat.ID)
	updates := []firestore.Update{
		{Path: "name", Value: cat.Name},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if _, err := doc.Update(ctx, updates); err != nil {
		return nil, apperror.FromStore(err, "category")
	}
	return readDoc(ctx, doc, "category", decodeCategory)
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperror.InvalidArgument("category id is required")
	}
	if _, err := r.col.Doc(id).Delete(ctx); err != nil {
		return apperror.FromStore(err, "category")
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	return getAll(ctx, r.col.OrderBy(fieldCreatedAt, firestore.Desc), "category", decodeCategory)
}

func (r *categoryRepository) WatchAll(ctx context.Context) *repository.Subscription[[]*model.Category] {
	return watch(ctx, r.col.OrderBy(fieldCreatedAt, firestore.Desc), "category", decodeCategory)
}

package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
)

type serviceRepository struct {
	col *firestore.CollectionRef
}

func NewServiceRepository(s *Store) repository.ServiceRepository {
	return &serviceRepository{col: s.client.Collection(colServices)}
}

func decodeService(snap *firestore.DocumentSnapshot) (*model.Service, error) {
	var svc model.Service
	if err := snap.DataTo(&svc); err != nil {
		return nil, apperror.NotFound("service")
	}
	svc.ID = snap.Ref.ID
	return &svc, nil
}

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service) (*model.Service, error) {
	doc := r.col.NewDoc()
	if svc.ID != "" {
		doc = r.col.Doc(svc.ID)
	}

	toSave := *svc
	toSave.CreatedAt = time.Time{}
	toSave.UpdatedAt = time.Time{}
	if _, err := doc.Set(ctx, &toSave); err != nil {
		return nil, apperror.FromStore(err, "service")
	}
	return readDoc(ctx, doc, "service", decodeService)
}

func (r *serviceRepository) Get(ctx context.Context, id string) (*model.Service, error) {
	if id == "" {
		return nil, apperror.InvalidArgument("service id is required")
	}
	return readDoc(ctx, r.col.Doc(id), "service", decodeService)
}

func (r *serviceRepository) Update(ctx context.Context, svc *model.Service) (*model.Service, error) {
	if svc.ID == "" {
		return nil, apperror.InvalidArgument("service id is required")
	}

	// professionalRef is set at creation and never part of the update set.
	doc := r.col.Doc(svc.ID)
	updates := []firestore.Update{
		{Path: "name", Value: svc.Name},
		{Path: "description", Value: svc.Description},
		{Path: "duration", Value: svc.Duration},
		{Path: "price", Value: svc.Price},
		{Path: "active", Value: svc.Active},
		{Path: "categoryRef", Value: svc.CategoryRef},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if _, err := doc.Update(ctx, updates); err != nil {
		return nil, apperror.FromStore(err, "service")
	}
	return readDoc(ctx, doc, "service", decodeService)
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperror.InvalidArgument("service id is required")
	}
	if _, err := r.col.Doc(id).Delete(ctx); err != nil {
		return apperror.FromStore(err, "service")
	}
	return nil
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	return getAll(ctx, r.ordered(), "service", decodeService)
}

func (r *serviceRepository) ListByProfessional(ctx context.Context, professionalID string) ([]*model.Service, error) {
	return getAll(ctx, r.byProfessional(professionalID), "service", decodeService)
}

func (r *serviceRepository) ListByCategory(ctx context.Context, categoryID string) ([]*model.Service, error) {
	return getAll(ctx, r.byCategory(categoryID), "service", decodeService)
}

func (r *serviceRepository) WatchAll(ctx context.Context) *repository.Subscription[[]*model.Service] {
	return watch(ctx, r.ordered(), "service", decodeService)
}

func (r *serviceRepository) WatchByProfessional(ctx context.Context, professionalID string) *repository.Subscription[[]*model.Service] {
	return watch(ctx, r.byProfessional(professionalID), "service", decodeService)
}

func (r *serviceRepository) WatchByCategory(ctx context.Context, categoryID string) *repository.Subscription[[]*model.Service] {
	return watch(ctx, r.byCategory(categoryID), "service", decodeService)
}

func (r *serviceRepository) ordered() firestore.Query {
	return r.col.OrderBy(fieldCreatedAt, firestore.Desc)
}

func (r *serviceRepository) byProfessional(professionalID string) firestore.Query {
	return r.col.Where("professionalRef", "==", professionalID).OrderBy(fieldCreatedAt, firestore.Desc)
}

func (r *serviceRepository) byCategory(categoryID string) firestore.Query {
	return r.col.Where("categoryRef", "==", categoryID).OrderBy(fieldCreatedAt, firestore.Desc)
}

package catalog

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendou/agendou-api/internal/auth"
	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
)

type fakeServiceRepo struct {
	services map[string]*model.Service
	nextID   int
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[string]*model.Service)}
}

func (f *fakeServiceRepo) Create(_ context.Context, svc *model.Service) (*model.Service, error) {
	f.nextID++
	stored := *svc
	stored.ID = "svc-" + strconv.Itoa(f.nextID)
	f.services[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeServiceRepo) Get(_ context.Context, id string) (*model.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, apperror.NotFound("service")
	}
	out := *svc
	return &out, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, svc *model.Service) (*model.Service, error) {
	if _, ok := f.services[svc.ID]; !ok {
		return nil, apperror.NotFound("service")
	}
	stored := *svc
	f.services[svc.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeServiceRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.services[id]; !ok {
		return apperror.NotFound("service")
	}
	delete(f.services, id)
	return nil
}

func (f *fakeServiceRepo) List(_ context.Context) ([]*model.Service, error) {
	out := make([]*model.Service, 0, len(f.services))
	for _, svc := range f.services {
		cp := *svc
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeServiceRepo) ListByProfessional(ctx context.Context, professionalID string) ([]*model.Service, error) {
	all, _ := f.List(ctx)
	out := all[:0]
	for _, svc := range all {
		if svc.ProfessionalRef == professionalID {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) ListByCategory(ctx context.Context, categoryID string) ([]*model.Service, error) {
	all, _ := f.List(ctx)
	out := all[:0]
	for _, svc := range all {
		if svc.CategoryRef == categoryID {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) watchCurrent(ctx context.Context) *repository.Subscription[[]*model.Service] {
	snapshot, _ := f.List(ctx)
	return repository.NewSubscription(ctx, func(ctx context.Context, send func([]*model.Service) bool) error {
		send(snapshot)
		return nil
	})
}

func (f *fakeServiceRepo) WatchAll(ctx context.Context) *repository.Subscription[[]*model.Service] {
	return f.watchCurrent(ctx)
}

func (f *fakeServiceRepo) WatchByProfessional(ctx context.Context, _ string) *repository.Subscription[[]*model.Service] {
	return f.watchCurrent(ctx)
}

func (f *fakeServiceRepo) WatchByCategory(ctx context.Context, _ string) *repository.Subscription[[]*model.Service] {
	return f.watchCurrent(ctx)
}

func asUser(uid string) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{UID: uid})
}

func newTestService(repo repository.ServiceRepository) *Service {
	return NewService(repo, nil, zerolog.Nop())
}

func TestCreateServiceStampsOwner(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := newTestService(repo)

	created, err := svc.CreateService(asUser("pro-1"), &model.CreateServiceRequest{
		Name:     "Haircut",
		Duration: 30,
		Price:    50,
	})
	require.NoError(t, err)

	assert.Equal(t, "pro-1", created.ProfessionalRef)
	assert.True(t, created.Active)
	assert.NotEmpty(t, created.ID)
}

func TestCreateServiceRequiresIdentity(t *testing.T) {
	svc := newTestService(newFakeServiceRepo())

	_, err := svc.CreateService(context.Background(), &model.CreateServiceRequest{Name: "Haircut", Duration: 30, Price: 50})
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthenticated))
}

func TestUpdateServiceByOwner(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := newTestService(repo)

	created, err := svc.CreateService(asUser("pro-1"), &model.CreateServiceRequest{Name: "Haircut", Duration: 30, Price: 50})
	require.NoError(t, err)

	name := "Premium haircut"
	price := 80.0
	updated, err := svc.UpdateService(asUser("pro-1"), created.ID, &model.UpdateServiceRequest{Name: &name, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, "Premium haircut", updated.Name)
	assert.Equal(t, 80.0, updated.Price)
	assert.Equal(t, 30, updated.Duration, "unset fields keep their stored values")
	assert.Equal(t, "pro-1", updated.ProfessionalRef)
}

func TestUpdateServiceByOtherIdentityLeavesStoredUntouched(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := newTestService(repo)

	created, err := svc.CreateService(asUser("pro-1"), &model.CreateServiceRequest{Name: "Haircut", Duration: 30, Price: 50})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = svc.UpdateService(asUser("pro-2"), created.ID, &model.UpdateServiceRequest{Name: &name})
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	stored, err := svc.GetService(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Haircut", stored.Name)
}

func TestUpdateServiceMissingIsNotFound(t *testing.T) {
	svc := newTestService(newFakeServiceRepo())

	name := "whatever"
	_, err := svc.UpdateService(asUser("pro-1"), "nope", &model.UpdateServiceRequest{Name: &name})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteServiceOwnership(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := newTestService(repo)

	created, err := svc.CreateService(asUser("pro-1"), &model.CreateServiceRequest{Name: "Haircut", Duration: 30, Price: 50})
	require.NoError(t, err)

	err = svc.DeleteService(asUser("pro-2"), created.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	require.NoError(t, svc.DeleteService(asUser("pro-1"), created.ID))

	_, err = svc.GetService(context.Background(), created.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteServiceMissingIsNotFoundBeforeAuthorization(t *testing.T) {
	svc := newTestService(newFakeServiceRepo())

	err := svc.DeleteService(asUser("pro-1"), "missing")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

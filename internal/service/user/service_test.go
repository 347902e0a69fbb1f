package user

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendou/agendou-api/internal/auth"
	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo(seed ...*model.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range seed {
		cp := *u
		f.users[u.ID] = &cp
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	stored := *u
	f.users[u.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeUserRepo) Get(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user")
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) (*model.User, error) {
	if _, ok := f.users[u.ID]; !ok {
		return nil, apperror.NotFound("user")
	}
	stored := *u
	f.users[u.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return apperror.NotFound("user")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	out := make([]*model.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) ListByCategory(_ context.Context, categoryID string) ([]*model.User, error) {
	out := make([]*model.User, 0)
	for _, u := range f.users {
		if u.CategoryRef == categoryID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) WatchAll(ctx context.Context) *repository.Subscription[[]*model.User] {
	return repository.NewSubscription(ctx, func(context.Context, func([]*model.User) bool) error { return nil })
}

func asUser(uid string) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{UID: uid})
}

func TestUpdateUserOwnProfile(t *testing.T) {
	repo := newFakeUserRepo(&model.User{ID: "uid-1", Name: "Ana", Type: model.UserTypeClient})
	svc := NewService(repo, nil, zerolog.Nop())

	name := "Ana Silva"
	kind := model.UserTypeProfessional
	updated, err := svc.UpdateUser(asUser("uid-1"), "uid-1", &model.UpdateUserRequest{Name: &name, Type: &kind})
	require.NoError(t, err)

	assert.Equal(t, "Ana Silva", updated.Name)
	assert.Equal(t, model.UserTypeProfessional, updated.Type)
}

func TestUpdateUserOtherProfileIsUnauthorized(t *testing.T) {
	repo := newFakeUserRepo(&model.User{ID: "uid-1", Name: "Ana"})
	svc := NewService(repo, nil, zerolog.Nop())

	name := "Hijacked"
	_, err := svc.UpdateUser(asUser("uid-2"), "uid-1", &model.UpdateUserRequest{Name: &name})
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	stored, err := svc.GetUser(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.Name)
}

func TestUpdateUserMissingIsNotFound(t *testing.T) {
	svc := NewService(newFakeUserRepo(), nil, zerolog.Nop())

	name := "whoever"
	_, err := svc.UpdateUser(asUser("uid-1"), "uid-1", &model.UpdateUserRequest{Name: &name})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteUserOwnership(t *testing.T) {
	repo := newFakeUserRepo(&model.User{ID: "uid-1"})
	svc := NewService(repo, nil, zerolog.Nop())

	err := svc.DeleteUser(asUser("uid-2"), "uid-1")
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	require.NoError(t, svc.DeleteUser(asUser("uid-1"), "uid-1"))
}

func TestGetCurrentUser(t *testing.T) {
	repo := newFakeUserRepo(&model.User{ID: "uid-1", Name: "Ana"})
	svc := NewService(repo, nil, zerolog.Nop())

	u, err := svc.GetCurrentUser(asUser("uid-1"))
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)

	_, err = svc.GetCurrentUser(context.Background())
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthenticated))
}

func TestListByCategory(t *testing.T) {
	repo := newFakeUserRepo(
		&model.User{ID: "uid-1", CategoryRef: "cat-1"},
		&model.User{ID: "uid-2", CategoryRef: "cat-2"},
	)
	svc := NewService(repo, nil, zerolog.Nop())

	users, err := svc.ListByCategory(context.Background(), "cat-1")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "uid-1", users[0].ID)
}

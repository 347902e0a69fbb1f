package authn

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

type fakeAccounts struct {
	created  map[string]string // uid -> email
	revoked  []string
	deleted  []string
	failUser bool
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{created: make(map[string]string)}
}

func (f *fakeAccounts) CreateAccount(_ context.Context, email, _, _ string) (string, error) {
	uid := "uid-" + email
	f.created[uid] = email
	return uid, nil
}

func (f *fakeAccounts) PasswordResetLink(_ context.Context, email string) (string, error) {
	if f.failUser {
		return "", apperror.NotFound("account")
	}
	return "https://reset.example/" + email, nil
}

func (f *fakeAccounts) RevokeRefreshTokens(_ context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return nil
}

func (f *fakeAccounts) DeleteAccount(_ context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return nil
}

type fakeUserRepo struct {
	users      map[string]*model.User
	failCreate bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	if f.failCreate {
		return nil, apperror.Persistence("store is down", nil)
	}
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

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) (*model.User, error) { return u, nil }
func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return apperror.NotFound("user")
	}
	delete(f.users, id)
	return nil
}
func (f *fakeUserRepo) List(_ context.Context) ([]*model.User, error) { return nil, nil }
func (f *fakeUserRepo) ListByCategory(_ context.Context, _ string) ([]*model.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) WatchAll(ctx context.Context) *repository.Subscription[[]*model.User] {
	return repository.NewSubscription(ctx, func(context.Context, func([]*model.User) bool) error { return nil })
}

type sentMail struct {
	to, link string
}

type fakeMailer struct {
	resets []sentMail
}

func (f *fakeMailer) SendPasswordReset(to, link string) error {
	f.resets = append(f.resets, sentMail{to: to, link: link})
	return nil
}

func (f *fakeMailer) SendAppointmentNotice(_, _, _ string) error { return nil }

func TestSignUpCreatesAccountAndProfile(t *testing.T) {
	accounts := newFakeAccounts()
	users := newFakeUserRepo()
	svc := NewService(accounts, users, nil, zerolog.Nop())

	created, err := svc.SignUp(context.Background(), &model.SignUpRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "correcthorse",
		Type:     model.UserTypeProfessional,
	})
	require.NoError(t, err)

	assert.Equal(t, "uid-ana@example.com", created.ID, "profile is keyed by the provider uid")
	assert.Equal(t, model.UserTypeProfessional, created.Type)

	stored, err := users.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", stored.Email)
}

func TestSignUpRollsBackAccountOnProfileFailure(t *testing.T) {
	accounts := newFakeAccounts()
	users := newFakeUserRepo()
	users.failCreate = true
	svc := NewService(accounts, users, nil, zerolog.Nop())

	_, err := svc.SignUp(context.Background(), &model.SignUpRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "correcthorse",
		Type:     model.UserTypeClient,
	})
	require.Error(t, err)
	assert.Equal(t, []string{"uid-ana@example.com"}, accounts.deleted)
}

func TestRequestPasswordResetDeliversLink(t *testing.T) {
	accounts := newFakeAccounts()
	mailer := &fakeMailer{}
	svc := NewService(accounts, newFakeUserRepo(), mailer, zerolog.Nop())

	err := svc.RequestPasswordReset(context.Background(), &model.PasswordResetRequest{Email: "ana@example.com"})
	require.NoError(t, err)

	require.Len(t, mailer.resets, 1)
	assert.Equal(t, "ana@example.com", mailer.resets[0].to)
	assert.Equal(t, "https://reset.example/ana@example.com", mailer.resets[0].link)
}

func TestRequestPasswordResetHidesUnknownAccounts(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.failUser = true
	mailer := &fakeMailer{}
	svc := NewService(accounts, newFakeUserRepo(), mailer, zerolog.Nop())

	err := svc.RequestPasswordReset(context.Background(), &model.PasswordResetRequest{Email: "ghost@example.com"})
	assert.NoError(t, err, "unknown accounts must not be probeable")
	assert.Empty(t, mailer.resets)
}

func TestSignOutRevokesTokens(t *testing.T) {
	accounts := newFakeAccounts()
	svc := NewService(accounts, newFakeUserRepo(), nil, zerolog.Nop())

	ctx := auth.WithIdentity(context.Background(), auth.Identity{UID: "uid-1"})
	require.NoError(t, svc.SignOut(ctx))
	assert.Equal(t, []string{"uid-1"}, accounts.revoked)

	err := svc.SignOut(context.Background())
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthenticated))
}

func TestDeleteAccountRemovesProfileAndAccount(t *testing.T) {
	accounts := newFakeAccounts()
	users := newFakeUserRepo()
	users.users["uid-1"] = &model.User{ID: "uid-1"}
	svc := NewService(accounts, users, nil, zerolog.Nop())

	ctx := auth.WithIdentity(context.Background(), auth.Identity{UID: "uid-1"})
	require.NoError(t, svc.DeleteAccount(ctx))

	assert.Equal(t, []string{"uid-1"}, accounts.deleted)
	_, err := users.Get(context.Background(), "uid-1")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteAccountToleratesMissingProfile(t *testing.T) {
	accounts := newFakeAccounts()
	svc := NewService(accounts, newFakeUserRepo(), nil, zerolog.Nop())

	ctx := auth.WithIdentity(context.Background(), auth.Identity{UID: "uid-1"})
	require.NoError(t, svc.DeleteAccount(ctx))
	assert.Equal(t, []string{"uid-1"}, accounts.deleted)
}

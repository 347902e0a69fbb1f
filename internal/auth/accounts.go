package auth

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/agendou/agendou-api/pkg/apperror"
)

// Accounts is the subset of identity-provider account management the
// application needs. Password verification itself happens on the client
// against the provider; the backend only manages accounts.
type Accounts interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (uid string, err error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	DeleteAccount(ctx context.Context, uid string) error
}

type firebaseAccounts struct {
	client *fbauth.Client
}

func NewFirebaseAccounts(client *fbauth.Client) Accounts {
	return &firebaseAccounts{client: client}
}

func (a *firebaseAccounts) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	rec, err := a.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return "", apperror.InvalidArgument("an account with this email already exists")
		}
		return "", apperror.Persistence("failed to create account", err)
	}
	return rec.UID, nil
}

func (a *firebaseAccounts) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := a.client.PasswordResetLink(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return "", apperror.NotFound("account")
		}
		return "", apperror.Persistence("failed to create password reset link", err)
	}
	return link, nil
}

func (a *firebaseAccounts) RevokeRefreshTokens(ctx context.Context, uid string) error {
	if err := a.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return apperror.Persistence("failed to revoke sessions", err)
	}
	return nil
}

func (a *firebaseAccounts) DeleteAccount(ctx context.Context, uid string) error {
	if err := a.client.DeleteUser(ctx, uid); err != nil {
		if fbauth.IsUserNotFound(err) {
			return apperror.NotFound("account")
		}
		return apperror.Persistence("failed to delete account", err)
	}
	return nil
}

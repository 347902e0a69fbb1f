// Package authn implements account lifecycle use cases against the
// identity provider. Sign-in itself happens on the client; the backend
// creates accounts, seeds the profile document, and manages sessions.
package authn

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agendou/agendou-api/internal/auth"
	"github.com/agendou/agendou-api/internal/email"
	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
)

type Service struct {
	accounts auth.Accounts
	users    repository.UserRepository
	mailer   email.Sender
	logger   zerolog.Logger
}

func NewService(accounts auth.Accounts, users repository.UserRepository, mailer email.Sender, logger zerolog.Logger) *Service {
	return &Service{accounts: accounts, users: users, mailer: mailer, logger: logger}
}

// SignUp creates the provider account and the profile document in one go.
// The profile is keyed by the new account's uid. If the profile write
// fails, the half-created account is rolled back.
func (s *Service) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	uid, err := s.accounts.CreateAccount(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:    uid,
		Name:  req.Name,
		Email: req.Email,
		Type:  req.Type,
		Phone: req.Phone,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if delErr := s.accounts.DeleteAccount(ctx, uid); delErr != nil {
			s.logger.Error().Err(delErr).Str("uid", uid).Msg("orphaned account after profile write failure")
		}
		return nil, err
	}

	s.logger.Info().Str("uid", uid).Msg("account created")
	return created, nil
}

// RequestPasswordReset emails a reset link to the account's address. An
// unknown email is reported as success so the endpoint cannot be used to
// probe for accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, req *model.PasswordResetRequest) error {
	link, err := s.accounts.PasswordResetLink(ctx, req.Email)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			s.logger.Info().Str("email", req.Email).Msg("password reset requested for unknown account")
			return nil
		}
		return err
	}

	if s.mailer == nil {
		return nil
	}
	if err := s.mailer.SendPasswordReset(req.Email, link); err != nil {
		return apperror.Persistence("failed to deliver password reset email", err)
	}
	return nil
}

// SignOut revokes the acting identity's refresh tokens. Already-issued ID
// tokens stay valid until they expire.
func (s *Service) SignOut(ctx context.Context) error {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return apperror.Unauthenticated("no session to sign out of")
	}
	return s.accounts.RevokeRefreshTokens(ctx, actor.UID)
}

// DeleteAccount removes both the provider account and the profile
// document of the acting identity.
func (s *Service) DeleteAccount(ctx context.Context) error {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return apperror.Unauthenticated("sign in to delete your account")
	}

	if err := s.users.Delete(ctx, actor.UID); err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
		return err
	}
	return s.accounts.DeleteAccount(ctx, actor.UID)
}

// CurrentUser resolves the acting identity's profile.
func (s *Service) CurrentUser(ctx context.Context) (*model.User, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apperror.Unauthenticated("sign in to view your profile")
	}
	return s.users.Get(ctx, actor.UID)
}

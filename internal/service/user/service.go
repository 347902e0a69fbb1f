// Package user implements profile use cases. A profile document is owned
// by the identity whose uid it is keyed by.
package user

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agendou/agendou-api/internal/auth"
	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
	"github.com/agendou/agendou-api/pkg/messaging"
)

type Service struct {
	repo   repository.UserRepository
	broker messaging.Broker
	logger zerolog.Logger
}

func NewService(repo repository.UserRepository, broker messaging.Broker, logger zerolog.Logger) *Service {
	return &Service{repo: repo, broker: broker, logger: logger}
}

func (s *Service) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

// GetCurrentUser resolves the acting identity's profile document.
func (s *Service) GetCurrentUser(ctx context.Context) (*model.User, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apperror.Unauthenticated("sign in to view your profile")
	}
	return s.repo.Get(ctx, actor.UID)
}

func (s *Service) UpdateUser(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error) {
	existing, err := s.authorize(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Type != nil {
		existing.Type = *req.Type
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.ImageURL != nil {
		existing.ImageURL = *req.ImageURL
	}
	if req.CategoryRef != nil {
		existing.CategoryRef = *req.CategoryRef
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "user.updated", updated)
	return updated, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.authorize(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "user.deleted", map[string]string{"id": id})
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID string) ([]*model.User, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

func (s *Service) WatchAll(ctx context.Context) *repository.Subscription[[]*model.User] {
	return s.repo.WatchAll(ctx)
}

// authorize requires the acting identity to be the profile's subject. The
// stored document must exist before any authorization verdict.
func (s *Service) authorize(ctx context.Context, id string) (*model.User, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apperror.Unauthenticated("sign in to modify your profile")
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.ID != actor.UID {
		return nil, apperror.Unauthorized("you can only modify your own profile")
	}
	return existing, nil
}

func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.broker == nil {
		return
	}
	msg := messaging.Message{Type: eventType, Payload: payload}
	if err := s.broker.Publish(ctx, messaging.EventsChannel, msg); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}

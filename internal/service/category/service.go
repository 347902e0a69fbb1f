// Package category implements taxonomy use cases. Categories carry no
// owner; mutations only require an authenticated identity.
package category

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
	repo   repository.CategoryRepository
	broker messaging.Broker
	logger zerolog.Logger
}

func NewService(repo repository.CategoryRepository, broker messaging.Broker, logger zerolog.Logger) *Service {
	return &Service{repo: repo, broker: broker, logger: logger}
}

func (s *Service) CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	if _, ok := auth.FromContext(ctx); !ok {
		return nil, apperror.Unauthenticated("sign in to create a category")
	}

	created, err := s.repo.Create(ctx, &model.Category{Name: req.Name})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "category.created", created)
	return created, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req *model.UpdateCategoryRequest) (*model.Category, error) {
	if _, ok := auth.FromContext(ctx); !ok {
		return nil, apperror.Unauthenticated("sign in to update a category")
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "category.updated", updated)
	return updated, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if _, ok := auth.FromContext(ctx); !ok {
		return apperror.Unauthenticated("sign in to delete a category")
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, "category.deleted", map[string]string{"id": id})
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) WatchAll(ctx context.Context) *repository.Subscription[[]*model.Category] {
	return s.repo.WatchAll(ctx)
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

// Package catalog implements the use cases for services offered by
// professionals. Mutations require the acting identity to own the stored
// service; reads and live queries are public.
package catalog

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
	repo   repository.ServiceRepository
	broker messaging.Broker
	logger zerolog.Logger
}

func NewService(repo repository.ServiceRepository, broker messaging.Broker, logger zerolog.Logger) *Service {
	return &Service{repo: repo, broker: broker, logger: logger}
}

// CreateService stamps the acting identity as owner. Whatever the caller
// put in the owner field is discarded.
func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apperror.Unauthenticated("sign in to create a service")
	}

	svc := &model.Service{
		ProfessionalRef: actor.UID,
		CategoryRef:     req.CategoryRef,
		Name:            req.Name,
		Description:     req.Description,
		Duration:        req.Duration,
		Price:           req.Price,
		Active:          true,
	}

	created, err := s.repo.Create(ctx, svc)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "service.created", created)
	return created, nil
}

func (s *Service) GetService(ctx context.Context, id string) (*model.Service, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateService(ctx context.Context, id string, req *model.UpdateServiceRequest) (*model.Service, error) {
	existing, err := s.authorize(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Duration != nil {
		existing.Duration = *req.Duration
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.Active != nil {
		existing.Active = *req.Active
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "service.updated", updated)
	return updated, nil
}

func (s *Service) DeleteService(ctx context.Context, id string) error {
	if _, err := s.authorize(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "service.deleted", map[string]string{"id": id})
	return nil
}

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByProfessional(ctx context.Context, professionalID string) ([]*model.Service, error) {
	return s.repo.ListByProfessional(ctx, professionalID)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID string) ([]*model.Service, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

func (s *Service) WatchAll(ctx context.Context) *repository.Subscription[[]*model.Service] {
	return s.repo.WatchAll(ctx)
}

func (s *Service) WatchByProfessional(ctx context.Context, professionalID string) *repository.Subscription[[]*model.Service] {
	return s.repo.WatchByProfessional(ctx, professionalID)
}

func (s *Service) WatchByCategory(ctx context.Context, categoryID string) *repository.Subscription[[]*model.Service] {
	return s.repo.WatchByCategory(ctx, categoryID)
}

// authorize fetches the stored service and checks the acting identity
// against its stored owner, never against caller-supplied data. A missing
// document is NotFound before any authorization verdict.
func (s *Service) authorize(ctx context.Context, id string) (*model.Service, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apperror.Unauthenticated("sign in to modify a service")
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.ProfessionalRef != actor.UID {
		return nil, apperror.Unauthorized("only the owning professional can modify this service")
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

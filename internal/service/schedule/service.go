// Package schedule implements work-schedule use cases for professionals.
package schedule

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
	repo   repository.WorkScheduleRepository
	broker messaging.Broker
	logger zerolog.Logger
}

func NewService(repo repository.WorkScheduleRepository, broker messaging.Broker, logger zerolog.Logger) *Service {
	return &Service{repo: repo, broker: broker, logger: logger}
}

func (s *Service) CreateWorkSchedule(ctx context.Context, req *model.CreateWorkScheduleRequest) (*model.WorkSchedule, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apperror.Unauthenticated("sign in to manage your schedule")
	}

	ws := &model.WorkSchedule{
		ProfessionalRef: actor.UID,
		DayOfWeek:       req.DayOfWeek,
		StartAt:         req.StartAt,
		EndAt:           req.EndAt,
		FreeDay:         req.FreeDay,
		Exceptions:      req.Exceptions,
	}

	created, err := s.repo.Create(ctx, ws)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "workSchedule.created", created)
	return created, nil
}

func (s *Service) GetWorkSchedule(ctx context.Context, id string) (*model.WorkSchedule, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateWorkSchedule(ctx context.Context, id string, req *model.UpdateWorkScheduleRequest) (*model.WorkSchedule, error) {
	existing, err := s.authorize(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DayOfWeek != nil {
		existing.DayOfWeek = *req.DayOfWeek
	}
	if req.StartAt != nil {
		existing.StartAt = *req.StartAt
	}
	if req.EndAt != nil {
		existing.EndAt = *req.EndAt
	}
	if req.FreeDay != nil {
		existing.FreeDay = *req.FreeDay
	}
	if req.Exceptions != nil {
		existing.Exceptions = *req.Exceptions
	}
	if existing.EndAt <= existing.StartAt && !existing.FreeDay {
		return nil, apperror.InvalidArgument("schedule must end after it starts")
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "workSchedule.updated", updated)
	return updated, nil
}

func (s *Service) DeleteWorkSchedule(ctx context.Context, id string) error {
	if _, err := s.authorize(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "workSchedule.deleted", map[string]string{"id": id})
	return nil
}

func (s *Service) ListByProfessional(ctx context.Context, professionalID string) ([]*model.WorkSchedule, error) {
	return s.repo.ListByProfessional(ctx, professionalID)
}

func (s *Service) WatchByProfessional(ctx context.Context, professionalID string) *repository.Subscription[[]*model.WorkSchedule] {
	return s.repo.WatchByProfessional(ctx, professionalID)
}

func (s *Service) authorize(ctx context.Context, id string) (*model.WorkSchedule, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apperror.Unauthenticated("sign in to manage your schedule")
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.ProfessionalRef != actor.UID {
		return nil, apperror.Unauthorized("only the owning professional can modify this schedule")
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

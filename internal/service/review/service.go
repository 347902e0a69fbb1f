// Package review implements review use cases. A review is owned by the
// client who wrote it; creating one marks the appointment as rated and
// refreshes the professional's aggregate rating.
package review

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
	repo         repository.ReviewRepository
	appointments repository.AppointmentRepository
	users        repository.UserRepository
	broker       messaging.Broker
	logger       zerolog.Logger
}

func NewService(
	repo repository.ReviewRepository,
	appointments repository.AppointmentRepository,
	users repository.UserRepository,
	broker messaging.Broker,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:         repo,
		appointments: appointments,
		users:        users,
		broker:       broker,
		logger:       logger,
	}
}

// CreateReview stamps the acting identity as the review's client. Only the
// client of the referenced appointment may review it, and only once.
func (s *Service) CreateReview(ctx context.Context, req *model.CreateReviewRequest) (*model.Review, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apperror.Unauthenticated("sign in to write a review")
	}

	apt, err := s.appointments.Get(ctx, req.AppointmentRef)
	if err != nil {
		return nil, err
	}
	if apt.ClientRef != actor.UID {
		return nil, apperror.Unauthorized("only the appointment's client can review it")
	}
	if apt.RatingGiven {
		return nil, apperror.InvalidArgument("appointment has already been reviewed")
	}

	rev := &model.Review{
		AppointmentRef:  req.AppointmentRef,
		ProfessionalRef: apt.ProfessionalRef,
		ClientRef:       actor.UID,
		Rating:          req.Rating,
		Comment:         req.Comment,
	}

	created, err := s.repo.Create(ctx, rev)
	if err != nil {
		return nil, err
	}

	// Both follow-ups are best-effort: the review itself is already stored.
	apt.RatingGiven = true
	if _, err := s.appointments.Update(ctx, apt); err != nil {
		s.logger.Warn().Err(err).Str("appointment", apt.ID).Msg("failed to mark appointment as rated")
	}
	s.refreshProfessionalRating(ctx, created.ProfessionalRef)

	s.publish(ctx, "review.created", created)
	return created, nil
}

func (s *Service) GetReview(ctx context.Context, id string) (*model.Review, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateReview(ctx context.Context, id string, req *model.UpdateReviewRequest) (*model.Review, error) {
	existing, err := s.authorize(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		existing.Rating = *req.Rating
	}
	if req.Comment != nil {
		existing.Comment = *req.Comment
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.refreshProfessionalRating(ctx, updated.ProfessionalRef)
	s.publish(ctx, "review.updated", updated)
	return updated, nil
}

func (s *Service) DeleteReview(ctx context.Context, id string) error {
	existing, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshProfessionalRating(ctx, existing.ProfessionalRef)
	s.publish(ctx, "review.deleted", map[string]string{"id": id})
	return nil
}

func (s *Service) ListByProfessional(ctx context.Context, professionalID string) ([]*model.Review, error) {
	return s.repo.ListByProfessional(ctx, professionalID)
}

func (s *Service) ListByAppointment(ctx context.Context, appointmentID string) ([]*model.Review, error) {
	return s.repo.ListByAppointment(ctx, appointmentID)
}

func (s *Service) WatchByProfessional(ctx context.Context, professionalID string) *repository.Subscription[[]*model.Review] {
	return s.repo.WatchByProfessional(ctx, professionalID)
}

func (s *Service) authorize(ctx context.Context, id string) (*model.Review, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apperror.Unauthenticated("sign in to modify a review")
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.ClientRef != actor.UID {
		return nil, apperror.Unauthorized("only the author can modify this review")
	}
	return existing, nil
}

// refreshProfessionalRating recomputes the mean rating over all of the
// professional's reviews and stores it on the profile.
func (s *Service) refreshProfessionalRating(ctx context.Context, professionalID string) {
	reviews, err := s.repo.ListByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Warn().Err(err).Str("professional", professionalID).Msg("failed to list reviews for rating refresh")
		return
	}

	var mean float64
	if len(reviews) > 0 {
		var sum int
		for _, rev := range reviews {
			sum += rev.Rating
		}
		mean = float64(sum) / float64(len(reviews))
	}

	user, err := s.users.Get(ctx, professionalID)
	if err != nil {
		s.logger.Warn().Err(err).Str("professional", professionalID).Msg("failed to load profile for rating refresh")
		return
	}
	user.Rating = mean
	if _, err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn().Err(err).Str("professional", professionalID).Msg("failed to store refreshed rating")
	}
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

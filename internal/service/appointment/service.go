// Package appointment implements booking use cases. An appointment is
// jointly owned: both the booking client and the professional may mutate it.
package appointment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agendou/agendou-api/internal/auth"
	"github.com/agendou/agendou-api/internal/email"
	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
	"github.com/agendou/agendou-api/pkg/messaging"
)

type Service struct {
	repo     repository.AppointmentRepository
	users    repository.UserRepository
	services repository.ServiceRepository
	mailer   email.Sender
	broker   messaging.Broker
	logger   zerolog.Logger
}

func NewService(
	repo repository.AppointmentRepository,
	users repository.UserRepository,
	services repository.ServiceRepository,
	mailer email.Sender,
	broker messaging.Broker,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		services: services,
		mailer:   mailer,
		broker:   broker,
		logger:   logger,
	}
}

// CreateAppointment books the acting identity as the client. The referenced
// service must exist; its owner becomes the professional party.
func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apperror.Unauthenticated("sign in to book an appointment")
	}

	svc, err := s.services.Get(ctx, req.ServiceRef)
	if err != nil {
		return nil, err
	}
	if svc.ProfessionalRef != req.ProfessionalRef {
		return nil, apperror.InvalidArgument("service does not belong to the given professional")
	}

	apt := &model.Appointment{
		ClientRef:       actor.UID,
		ProfessionalRef: req.ProfessionalRef,
		ServiceRef:      req.ServiceRef,
		StartAt:         req.StartAt,
		Status:          model.AppointmentStatusScheduled,
		Notes:           req.Notes,
	}

	created, err := s.repo.Create(ctx, apt)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "appointment.created", created)
	s.notify(ctx, created.ProfessionalRef, "New booking",
		fmt.Sprintf("<p>You have a new booking for %s.</p>", created.StartAt.Format("2006-01-02 15:04")))
	return created, nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, id string, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	existing, err := s.authorize(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartAt != nil {
		existing.StartAt = *req.StartAt
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	if req.Notes != nil {
		existing.Notes = *req.Notes
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "appointment.updated", updated)
	return updated, nil
}

// CancelAppointment flips the status rather than deleting the document, so
// both parties keep the record.
func (s *Service) CancelAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	existing, err := s.authorize(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Status == model.AppointmentStatusCancelled {
		return nil, apperror.InvalidArgument("appointment is already cancelled")
	}
	if existing.Status == model.AppointmentStatusCompleted {
		return nil, apperror.InvalidArgument("cannot cancel a completed appointment")
	}

	existing.Status = model.AppointmentStatusCancelled
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "appointment.cancelled", updated)
	s.notify(ctx, otherParty(updated, mustActor(ctx)), "Booking cancelled",
		fmt.Sprintf("<p>The booking for %s was cancelled.</p>", updated.StartAt.Format("2006-01-02 15:04")))
	return updated, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	if _, err := s.authorize(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "appointment.deleted", map[string]string{"id": id})
	return nil
}

func (s *Service) ListByClient(ctx context.Context, clientID string) ([]*model.Appointment, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *Service) ListByProfessional(ctx context.Context, professionalID string) ([]*model.Appointment, error) {
	return s.repo.ListByProfessional(ctx, professionalID)
}

func (s *Service) ListByService(ctx context.Context, serviceID string) ([]*model.Appointment, error) {
	return s.repo.ListByService(ctx, serviceID)
}

func (s *Service) WatchByClient(ctx context.Context, clientID string) *repository.Subscription[[]*model.Appointment] {
	return s.repo.WatchByClient(ctx, clientID)
}

func (s *Service) WatchByProfessional(ctx context.Context, professionalID string) *repository.Subscription[[]*model.Appointment] {
	return s.repo.WatchByProfessional(ctx, professionalID)
}

// authorize fetches the stored appointment and requires the acting identity
// to be a member of its authorized-actor set (client or professional).
func (s *Service) authorize(ctx context.Context, id string) (*model.Appointment, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apperror.Unauthenticated("sign in to modify an appointment")
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !existing.CanMutate(actor.UID) {
		return nil, apperror.Unauthorized("only the client or the professional can modify this appointment")
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

// notify emails the given user, best-effort.
func (s *Service) notify(ctx context.Context, userID, subject, body string) {
	if s.mailer == nil || userID == "" {
		return
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil || user.Email == "" {
		return
	}
	if err := s.mailer.SendAppointmentNotice(user.Email, subject, body); err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("appointment notice not delivered")
	}
}

func otherParty(apt *model.Appointment, uid string) string {
	if apt.ClientRef == uid {
		return apt.ProfessionalRef
	}
	return apt.ClientRef
}

func mustActor(ctx context.Context) string {
	actor, _ := auth.FromContext(ctx)
	return actor.UID
}

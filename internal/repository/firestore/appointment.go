package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
)

type appointmentRepository struct {
	col *firestore.CollectionRef
}

func NewAppointmentRepository(s *Store) repository.AppointmentRepository {
	return &appointmentRepository{col: s.client.Collection(colAppointments)}
}

func decodeAppointment(snap *firestore.DocumentSnapshot) (*model.Appointment, error) {
	var apt model.Appointment
	if err := snap.DataTo(&apt); err != nil {
		return nil, apperror.NotFound("appointment")
	}
	apt.ID = snap.Ref.ID
	return &apt, nil
}

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) (*model.Appointment, error) {
	doc := r.col.NewDoc()
	if apt.ID != "" {
		doc = r.col.Doc(apt.ID)
	}

	toSave := *apt
	toSave.CreatedAt = time.Time{}
	toSave.UpdatedAt = time.Time{}
	if _, err := doc.Set(ctx, &toSave); err != nil {
		return nil, apperror.FromStore(err, "appointment")
	}
	return readDoc(ctx, doc, "appointment", decodeAppointment)
}

func (r *appointmentRepository) Get(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperror.InvalidArgument("appointment id is required")
	}
	return readDoc(ctx, r.col.Doc(id), "appointment", decodeAppointment)
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) (*model.Appointment, error) {
	if apt.ID == "" {
		return nil, apperror.InvalidArgument("appointment id is required")
	}

	// clientRef, professionalRef and serviceRef are fixed at booking time.
	doc := r.col.Doc(apt.ID)
	updates := []firestore.Update{
		{Path: "startAt", Value: apt.StartAt},
		{Path: "appointmentStatus", Value: apt.Status},
		{Path: "notes", Value: apt.Notes},
		{Path: "ratingGiven", Value: apt.RatingGiven},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if _, err := doc.Update(ctx, updates); err != nil {
		return nil, apperror.FromStore(err, "appointment")
	}
	return readDoc(ctx, doc, "appointment", decodeAppointment)
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperror.InvalidArgument("appointment id is required")
	}
	if _, err := r.col.Doc(id).Delete(ctx); err != nil {
		return apperror.FromStore(err, "appointment")
	}
	return nil
}

func (r *appointmentRepository) ListByClient(ctx context.Context, clientID string) ([]*model.Appointment, error) {
	return getAll(ctx, r.byField("clientRef", clientID), "appointment", decodeAppointment)
}

func (r *appointmentRepository) ListByProfessional(ctx context.Context, professionalID string) ([]*model.Appointment, error) {
	return getAll(ctx, r.byField("professionalRef", professionalID), "appointment", decodeAppointment)
}

func (r *appointmentRepository) ListByService(ctx context.Context, serviceID string) ([]*model.Appointment, error) {
	return getAll(ctx, r.byField("serviceRef", serviceID), "appointment", decodeAppointment)
}

func (r *appointmentRepository) WatchAll(ctx context.Context) *repository.Subscription[[]*model.Appointment] {
	return watch(ctx, r.col.OrderBy(fieldCreatedAt, firestore.Desc), "appointment", decodeAppointment)
}

func (r *appointmentRepository) WatchByClient(ctx context.Context, clientID string) *repository.Subscription[[]*model.Appointment] {
	return watch(ctx, r.byField("clientRef", clientID), "appointment", decodeAppointment)
}

func (r *appointmentRepository) WatchByProfessional(ctx context.Context, professionalID string) *repository.Subscription[[]*model.Appointment] {
	return watch(ctx, r.byField("professionalRef", professionalID), "appointment", decodeAppointment)
}

func (r *appointmentRepository) byField(field, value string) firestore.Query {
	return r.col.Where(field, "==", value).OrderBy(fieldCreatedAt, firestore.Desc)
}

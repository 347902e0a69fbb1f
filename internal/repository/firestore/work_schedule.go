package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
)

type workScheduleRepository struct {
	col *firestore.CollectionRef
}

func NewWorkScheduleRepository(s *Store) repository.WorkScheduleRepository {
	return &workScheduleRepository{col: s.client.Collection(colWorkSchedules)}
}

func decodeWorkSchedule(snap *firestore.DocumentSnapshot) (*model.WorkSchedule, error) {
	var ws model.WorkSchedule
	if err := snap.DataTo(&ws); err != nil {
		return nil, apperror.NotFound("work schedule")
	}
	ws.ID = snap.Ref.ID
	return &ws, nil
}

func (r *workScheduleRepository) Create(ctx context.Context, ws *model.WorkSchedule) (*model.WorkSchedule, error) {
	doc := r.col.NewDoc()
	if ws.ID != "" {
		doc = r.col.Doc(ws.ID)
	}

	toSave := *ws
	toSave.CreatedAt = time.Time{}
	toSave.UpdatedAt = time.Time{}
	if _, err := doc.Set(ctx, &toSave); err != nil {
		return nil, apperror.FromStore(err, "work schedule")
	}
	return readDoc(ctx, doc, "work schedule", decodeWorkSchedule)
}

func (r *workScheduleRepository) Get(ctx context.Context, id string) (*model.WorkSchedule, error) {
	if id == "" {
		return nil, apperror.InvalidArgument("work schedule id is required")
	}
	return readDoc(ctx, r.col.Doc(id), "work schedule", decodeWorkSchedule)
}

func (r *workScheduleRepository) Update(ctx context.Context, ws *model.WorkSchedule) (*model.WorkSchedule, error) {
	if ws.ID == "" {
		return nil, apperror.InvalidArgument("work schedule id is required")
	}

	doc := r.col.Doc(ws.ID)
	updates := []firestore.Update{
		{Path: "dayOfWeek", Value: ws.DayOfWeek},
		{Path: "startAt", Value: ws.StartAt},
		{Path: "endAt", Value: ws.EndAt},
		{Path: "isFreeDay", Value: ws.FreeDay},
		{Path: "exceptions", Value: ws.Exceptions},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if _, err := doc.Update(ctx, updates); err != nil {
		return nil, apperror.FromStore(err, "work schedule")
	}
	return readDoc(ctx, doc, "work schedule", decodeWorkSchedule)
}

func (r *workScheduleRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperror.InvalidArgument("work schedule id is required")
	}
	if _, err := r.col.Doc(id).Delete(ctx); err != nil {
		return apperror.FromStore(err, "work schedule")
	}
	return nil
}

func (r *workScheduleRepository) ListByProfessional(ctx context.Context, professionalID string) ([]*model.WorkSchedule, error) {
	q := r.col.Where("professionalRef", "==", professionalID).OrderBy(fieldCreatedAt, firestore.Desc)
	return getAll(ctx, q, "work schedule", decodeWorkSchedule)
}

func (r *workScheduleRepository) WatchByProfessional(ctx context.Context, professionalID string) *repository.Subscription[[]*model.WorkSchedule] {
	q := r.col.Where("professionalRef", "==", professionalID).OrderBy(fieldCreatedAt, firestore.Desc)
	return watch(ctx, q, "work schedule", decodeWorkSchedule)
}

package repository

import (
	"context"

	"github.com/agendou/agendou-api/internal/model"
)

// All repository interfaces in one file. One-shot operations return errors
// from the apperror taxonomy; Watch operations report failures through the
// subscription handle.
type (
	// UserRepository persists user profiles keyed by identity uid.
	UserRepository interface {
		Create(ctx context.Context, user *model.User) (*model.User, error)
		Get(ctx context.Context, id string) (*model.User, error)
		Update(ctx context.Context, user *model.User) (*model.User, error)
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.User, error)
		ListByCategory(ctx context.Context, categoryID string) ([]*model.User, error)
		WatchAll(ctx context.Context) *Subscription[[]*model.User]
	}

	ServiceRepository interface {
		Create(ctx context.Context, svc *model.Service) (*model.Service, error)
		Get(ctx context.Context, id string) (*model.Service, error)
		Update(ctx context.Context, svc *model.Service) (*model.Service, error)
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Service, error)
		ListByProfessional(ctx context.Context, professionalID string) ([]*model.Service, error)
		ListByCategory(ctx context.Context, categoryID string) ([]*model.Service, error)
		WatchAll(ctx context.Context) *Subscription[[]*model.Service]
		WatchByProfessional(ctx context.Context, professionalID string) *Subscription[[]*model.Service]
		WatchByCategory(ctx context.Context, categoryID string) *Subscription[[]*model.Service]
	}

	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment) (*model.Appointment, error)
		Get(ctx context.Context, id string) (*model.Appointment, error)
		Update(ctx context.Context, apt *model.Appointment) (*model.Appointment, error)
		Delete(ctx context.Context, id string) error
		ListByClient(ctx context.Context, clientID string) ([]*model.Appointment, error)
		ListByProfessional(ctx context.Context, professionalID string) ([]*model.Appointment, error)
		ListByService(ctx context.Context, serviceID string) ([]*model.Appointment, error)
		WatchAll(ctx context.Context) *Subscription[[]*model.Appointment]
		WatchByClient(ctx context.Context, clientID string) *Subscription[[]*model.Appointment]
		WatchByProfessional(ctx context.Context, professionalID string) *Subscription[[]*model.Appointment]
	}

	CategoryRepository interface {
		Create(ctx context.Context, cat *model.Category) (*model.Category, error)
		Get(ctx context.Context, id string) (*model.Category, error)
		Update(ctx context.Context, cat *model.Category) (*model.Category, error)
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Category, error)
		WatchAll(ctx context.Context) *Subscription[[]*model.Category]
	}

	ReviewRepository interface {
		Create(ctx context.Context, rev *model.Review) (*model.Review, error)
		Get(ctx context.Context, id string) (*model.Review, error)
		Update(ctx context.Context, rev *model.Review) (*model.Review, error)
		Delete(ctx context.Context, id string) error
		ListByProfessional(ctx context.Context, professionalID string) ([]*model.Review, error)
		ListByAppointment(ctx context.Context, appointmentID string) ([]*model.Review, error)
		WatchByProfessional(ctx context.Context, professionalID string) *Subscription[[]*model.Review]
	}

	WorkScheduleRepository interface {
		Create(ctx context.Context, ws *model.WorkSchedule) (*model.WorkSchedule, error)
		Get(ctx context.Context, id string) (*model.WorkSchedule, error)
		Update(ctx context.Context, ws *model.WorkSchedule) (*model.WorkSchedule, error)
		Delete(ctx context.Context, id string) error
		ListByProfessional(ctx context.Context, professionalID string) ([]*model.WorkSchedule, error)
		WatchByProfessional(ctx context.Context, professionalID string) *Subscription[[]*model.WorkSchedule]
	}
)

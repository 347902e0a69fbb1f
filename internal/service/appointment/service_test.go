package appointment

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendou/agendou-api/internal/auth"
	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/repository"
	"github.com/agendou/agendou-api/pkg/apperror"
)

type fakeAppointmentRepo struct {
	appointments map[string]*model.Appointment
	nextID       int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[string]*model.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) (*model.Appointment, error) {
	f.nextID++
	stored := *apt
	stored.ID = "apt-" + strconv.Itoa(f.nextID)
	f.appointments[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id string) (*model.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, apperror.NotFound("appointment")
	}
	out := *apt
	return &out, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, apt *model.Appointment) (*model.Appointment, error) {
	if _, ok := f.appointments[apt.ID]; !ok {
		return nil, apperror.NotFound("appointment")
	}
	stored := *apt
	f.appointments[apt.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.appointments[id]; !ok {
		return apperror.NotFound("appointment")
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentRepo) list(match func(*model.Appointment) bool) []*model.Appointment {
	out := make([]*model.Appointment, 0)
	for _, apt := range f.appointments {
		if match(apt) {
			cp := *apt
			out = append(out, &cp)
		}
	}
	return out
}

func (f *fakeAppointmentRepo) ListByClient(_ context.Context, clientID string) ([]*model.Appointment, error) {
	return f.list(func(a *model.Appointment) bool { return a.ClientRef == clientID }), nil
}

func (f *fakeAppointmentRepo) ListByProfessional(_ context.Context, professionalID string) ([]*model.Appointment, error) {
	return f.list(func(a *model.Appointment) bool { return a.ProfessionalRef == professionalID }), nil
}

func (f *fakeAppointmentRepo) ListByService(_ context.Context, serviceID string) ([]*model.Appointment, error) {
	return f.list(func(a *model.Appointment) bool { return a.ServiceRef == serviceID }), nil
}

func (f *fakeAppointmentRepo) watchCurrent(ctx context.Context) *repository.Subscription[[]*model.Appointment] {
	snapshot := f.list(func(*model.Appointment) bool { return true })
	return repository.NewSubscription(ctx, func(ctx context.Context, send func([]*model.Appointment) bool) error {
		send(snapshot)
		return nil
	})
}

func (f *fakeAppointmentRepo) WatchAll(ctx context.Context) *repository.Subscription[[]*model.Appointment] {
	return f.watchCurrent(ctx)
}

func (f *fakeAppointmentRepo) WatchByClient(ctx context.Context, _ string) *repository.Subscription[[]*model.Appointment] {
	return f.watchCurrent(ctx)
}

func (f *fakeAppointmentRepo) WatchByProfessional(ctx context.Context, _ string) *repository.Subscription[[]*model.Appointment] {
	return f.watchCurrent(ctx)
}

type fixture struct {
	svc  *Service
	repo *fakeAppointmentRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newFakeAppointmentRepo()
	users := &staticUserRepo{}
	services := &staticServiceRepo{services: map[string]*model.Service{
		"svc-1": {ID: "svc-1", ProfessionalRef: "pro-1", Name: "Haircut"},
	}}
	return &fixture{
		svc:  NewService(repo, users, services, nil, nil, zerolog.Nop()),
		repo: repo,
	}
}

// staticUserRepo satisfies the interface; the tests never send mail so only
// Get matters.
type staticUserRepo struct{}

func (s *staticUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) { return u, nil }
func (s *staticUserRepo) Get(_ context.Context, id string) (*model.User, error) {
	return &model.User{ID: id}, nil
}
func (s *staticUserRepo) Update(_ context.Context, u *model.User) (*model.User, error) { return u, nil }
func (s *staticUserRepo) Delete(_ context.Context, _ string) error                     { return nil }
func (s *staticUserRepo) List(_ context.Context) ([]*model.User, error)                { return nil, nil }
func (s *staticUserRepo) ListByCategory(_ context.Context, _ string) ([]*model.User, error) {
	return nil, nil
}
func (s *staticUserRepo) WatchAll(ctx context.Context) *repository.Subscription[[]*model.User] {
	return repository.NewSubscription(ctx, func(context.Context, func([]*model.User) bool) error { return nil })
}

type staticServiceRepo struct {
	services map[string]*model.Service
}

func (s *staticServiceRepo) Create(_ context.Context, svc *model.Service) (*model.Service, error) {
	return svc, nil
}
func (s *staticServiceRepo) Get(_ context.Context, id string) (*model.Service, error) {
	svc, ok := s.services[id]
	if !ok {
		return nil, apperror.NotFound("service")
	}
	return svc, nil
}
func (s *staticServiceRepo) Update(_ context.Context, svc *model.Service) (*model.Service, error) {
	return svc, nil
}
func (s *staticServiceRepo) Delete(_ context.Context, _ string) error          { return nil }
func (s *staticServiceRepo) List(_ context.Context) ([]*model.Service, error)  { return nil, nil }
func (s *staticServiceRepo) ListByProfessional(_ context.Context, _ string) ([]*model.Service, error) {
	return nil, nil
}
func (s *staticServiceRepo) ListByCategory(_ context.Context, _ string) ([]*model.Service, error) {
	return nil, nil
}
func (s *staticServiceRepo) WatchAll(ctx context.Context) *repository.Subscription[[]*model.Service] {
	return repository.NewSubscription(ctx, func(context.Context, func([]*model.Service) bool) error { return nil })
}
func (s *staticServiceRepo) WatchByProfessional(ctx context.Context, _ string) *repository.Subscription[[]*model.Service] {
	return s.WatchAll(ctx)
}
func (s *staticServiceRepo) WatchByCategory(ctx context.Context, _ string) *repository.Subscription[[]*model.Service] {
	return s.WatchAll(ctx)
}

func asUser(uid string) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{UID: uid})
}

func validCreateRequest() *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		ProfessionalRef: "pro-1",
		ServiceRef:      "svc-1",
		StartAt:         time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateAppointmentStampsClient(t *testing.T) {
	fx := newFixture(t)

	created, err := fx.svc.CreateAppointment(asUser("client-1"), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "client-1", created.ClientRef)
	assert.Equal(t, "pro-1", created.ProfessionalRef)
	assert.Equal(t, model.AppointmentStatusScheduled, created.Status)
	assert.False(t, created.RatingGiven)
}

func TestCreateAppointmentRejectsMismatchedProfessional(t *testing.T) {
	fx := newFixture(t)

	req := validCreateRequest()
	req.ProfessionalRef = "pro-2"
	_, err := fx.svc.CreateAppointment(asUser("client-1"), req)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
}

func TestCreateAppointmentUnknownServiceIsNotFound(t *testing.T) {
	fx := newFixture(t)

	req := validCreateRequest()
	req.ServiceRef = "svc-missing"
	_, err := fx.svc.CreateAppointment(asUser("client-1"), req)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUpdateAppointmentJointOwnership(t *testing.T) {
	fx := newFixture(t)

	created, err := fx.svc.CreateAppointment(asUser("client-1"), validCreateRequest())
	require.NoError(t, err)

	confirmed := model.AppointmentStatusConfirmed
	updated, err := fx.svc.UpdateAppointment(asUser("pro-1"), created.ID, &model.UpdateAppointmentRequest{Status: &confirmed})
	require.NoError(t, err, "the professional is an authorized actor")
	assert.Equal(t, model.AppointmentStatusConfirmed, updated.Status)

	notes := "running late"
	updated, err = fx.svc.UpdateAppointment(asUser("client-1"), created.ID, &model.UpdateAppointmentRequest{Notes: &notes})
	require.NoError(t, err, "the client is an authorized actor")
	assert.Equal(t, "running late", updated.Notes)

	_, err = fx.svc.UpdateAppointment(asUser("stranger"), created.ID, &model.UpdateAppointmentRequest{Notes: &notes})
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}

func TestCancelAppointment(t *testing.T) {
	fx := newFixture(t)

	created, err := fx.svc.CreateAppointment(asUser("client-1"), validCreateRequest())
	require.NoError(t, err)

	cancelled, err := fx.svc.CancelAppointment(asUser("client-1"), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)

	_, err = fx.svc.CancelAppointment(asUser("client-1"), created.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument), "double cancel is rejected")
}

func TestCancelCompletedAppointment(t *testing.T) {
	fx := newFixture(t)

	created, err := fx.svc.CreateAppointment(asUser("client-1"), validCreateRequest())
	require.NoError(t, err)

	completed := model.AppointmentStatusCompleted
	_, err = fx.svc.UpdateAppointment(asUser("pro-1"), created.ID, &model.UpdateAppointmentRequest{Status: &completed})
	require.NoError(t, err)

	_, err = fx.svc.CancelAppointment(asUser("pro-1"), created.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
}

func TestDeleteAppointmentByEitherParty(t *testing.T) {
	fx := newFixture(t)

	created, err := fx.svc.CreateAppointment(asUser("client-1"), validCreateRequest())
	require.NoError(t, err)

	err = fx.svc.DeleteAppointment(asUser("stranger"), created.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	require.NoError(t, fx.svc.DeleteAppointment(asUser("pro-1"), created.ID))
}

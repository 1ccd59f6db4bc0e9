package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) LockOwner(ctx context.Context, ownerID string) error {
	return m.Called(ctx, ownerID).Error(0)
}

func (m *MockRepository) FindConflicting(ctx context.Context, ownerID string, start, end time.Time, excludeID string) ([]models.Appointment, error) {
	args := m.Called(ctx, ownerID, start, end, excludeID)
	apps, _ := args.Get(0).([]models.Appointment)
	return apps, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, ap *models.Appointment) error {
	return m.Called(ctx, ap).Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	ap, _ := args.Get(0).(*models.Appointment)
	return ap, args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id string, patch models.AppointmentPatch) (*models.Appointment, error) {
	args := m.Called(ctx, id, patch)
	ap, _ := args.Get(0).(*models.Appointment)
	return ap, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, limit, offset int) ([]models.Appointment, int64, error) {
	args := m.Called(ctx, limit, offset)
	apps, _ := args.Get(0).([]models.Appointment)
	return apps, args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) list(args mock.Arguments) ([]models.Appointment, error) {
	apps, _ := args.Get(0).([]models.Appointment)
	return apps, args.Error(1)
}

func (m *MockRepository) FindByOwnerID(ctx context.Context, id string) ([]models.Appointment, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockRepository) FindByClientID(ctx context.Context, id string) ([]models.Appointment, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockRepository) FindByBusinessID(ctx context.Context, id string) ([]models.Appointment, error) {
	return m.list(m.Called(ctx, id))
}

func (m *MockRepository) FindByBusinessInPeriod(ctx context.Context, id string, start, end time.Time) ([]models.Appointment, error) {
	return m.list(m.Called(ctx, id, start, end))
}

func (m *MockRepository) FindByOwnerInPeriod(ctx context.Context, id string, start, end time.Time) ([]models.Appointment, error) {
	return m.list(m.Called(ctx, id, start, end))
}

func (m *MockRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	return m.list(m.Called(ctx, start, end))
}

type stubLookups struct {
	users    map[string]*models.User
	services map[string]*models.Service
}

func (s stubLookups) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return s.users[id], nil
}

func (s stubLookups) GetServiceByID(_ context.Context, id string) (*models.Service, error) {
	return s.services[id], nil
}

func newStubLookups() stubLookups {
	biz := "biz-1"
	return stubLookups{
		users: map[string]*models.User{
			"owner-1":  {ID: "owner-1", BusinessID: &biz, Role: models.RoleBarber},
			"client-1": {ID: "client-1", Role: models.RoleClient},
		},
		services: map[string]*models.Service{
			"svc-1": {ID: "svc-1", BusinessID: biz, DurationMinutes: 30},
		},
	}
}

func TestCreate_ExclusionViolationIsConflict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	lookups := newStubLookups()

	repo.On("LockOwner", ctx, "owner-1").Return(nil)
	repo.On("FindConflicting", ctx, "owner-1", mock.Anything, mock.Anything, "").Return([]models.Appointment{}, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Appointment")).
		Return(&pgconn.PgError{Code: "23P01", ConstraintName: "appointments_owner_no_overlap"})

	uc := NewCreateAppointment(repo, lookups, lookups, nil)
	_, err := uc.Execute(ctx, CreateAppointmentInput{
		OwnerID: "owner-1", ClientID: "client-1", BusinessID: "biz-1", ServiceID: "svc-1",
		StartTime: at("10:00"), EndTime: at("10:30"),
	})

	assert.ErrorIs(t, err, domain.ErrTimeConflict)
	repo.AssertExpectations(t)
}

func TestCreate_IgnoresStatusAndNormalizesToUTC(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	lookups := newStubLookups()

	var stored *models.Appointment
	repo.On("LockOwner", ctx, "owner-1").Return(nil)
	repo.On("FindConflicting", ctx, "owner-1", mock.Anything, mock.Anything, "").Return(nil, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Appointment")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.Appointment) }).
		Return(nil)

	loc := time.FixedZone("BRT", -3*3600)
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, loc)

	uc := NewCreateAppointment(repo, lookups, lookups, nil)
	ap, err := uc.Execute(ctx, CreateAppointmentInput{
		OwnerID: "owner-1", ClientID: "client-1", BusinessID: "biz-1", ServiceID: "svc-1",
		StartTime: start, EndTime: start.Add(30 * time.Minute),
	})
	require.NoError(t, err)
	require.Same(t, stored, ap)
	assert.Equal(t, models.StatusPending, ap.Status)
	assert.Equal(t, time.UTC, ap.StartTime.Location())
	assert.True(t, ap.StartTime.Equal(at("10:00")))
}

func TestCreate_FailsBeforeScanWhenBusinessDiffers(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	lookups := newStubLookups()

	uc := NewCreateAppointment(repo, lookups, lookups, nil)
	_, err := uc.Execute(ctx, CreateAppointmentInput{
		OwnerID: "owner-1", ClientID: "client-1", BusinessID: "biz-2", ServiceID: "svc-1",
		StartTime: at("10:00"), EndTime: at("10:30"),
	})

	assert.ErrorIs(t, err, domain.ErrBarberNotInBusiness)
	repo.AssertNotCalled(t, "FindConflicting", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_RowVanishedReturnsNil(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	lookups := newStubLookups()

	current := &models.Appointment{ID: "ap-1", OwnerID: "owner-1", BusinessID: "biz-1", Status: models.StatusPending, StartTime: at("10:00"), EndTime: at("10:30")}
	patch := models.AppointmentPatch{Status: ptr(models.StatusConfirmed)}

	repo.On("FindByID", ctx, "ap-1").Return(current, nil)
	repo.On("LockOwner", ctx, "owner-1").Return(nil)
	repo.On("Update", ctx, "ap-1", patch).Return(nil, nil)

	uc := NewUpdateAppointment(repo, lookups, nil, false)
	got, err := uc.Execute(ctx, "", "ap-1", patch)

	require.NoError(t, err)
	assert.Nil(t, got)
	repo.AssertNotCalled(t, "FindConflicting", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_RowGoneUnderLockSkipsWrite(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	lookups := newStubLookups()

	current := &models.Appointment{ID: "ap-1", OwnerID: "owner-1", BusinessID: "biz-1", Status: models.StatusPending, StartTime: at("10:00"), EndTime: at("10:30")}
	patch := models.AppointmentPatch{StartTime: ptr(at("10:15"))}

	repo.On("FindByID", ctx, "ap-1").Return(current, nil).Once()
	repo.On("LockOwner", ctx, "owner-1").Return(nil)
	repo.On("FindByID", ctx, "ap-1").Return(nil, nil).Once()

	uc := NewUpdateAppointment(repo, lookups, nil, false)
	got, err := uc.Execute(ctx, "", "ap-1", patch)

	require.NoError(t, err)
	assert.Nil(t, got)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

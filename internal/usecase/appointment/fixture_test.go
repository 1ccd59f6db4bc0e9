package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studiobook/internal/db/dbtest"
	"github.com/BruksfildServices01/studiobook/internal/infra/repository"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

type fixture struct {
	appointments *repository.AppointmentGormRepository
	users        *repository.UserGormRepository
	services     *repository.ServiceGormRepository
	businesses   *repository.BusinessGormRepository

	business *models.Business
	owner    *models.User
	client   *models.User
	service  *models.Service
}

// day is a Monday.
var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hhmm string) time.Time {
	c, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return day.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	gdb := dbtest.Open(t)

	f := &fixture{
		appointments: repository.NewAppointmentGormRepository(gdb),
		users:        repository.NewUserGormRepository(gdb),
		services:     repository.NewServiceGormRepository(gdb),
		businesses:   repository.NewBusinessGormRepository(gdb),
	}

	manager := &models.User{Name: "Marta", Email: "marta@example.com", PasswordHash: "x", Role: models.RoleOwner, IsActive: true}
	require.NoError(t, f.users.CreateUser(ctx, manager))

	f.business = &models.Business{OwnerID: manager.ID, Name: "Corte Fino", Address: "Rua A, 1", Timezone: "UTC", IsActive: true}
	require.NoError(t, f.businesses.CreateBusiness(ctx, f.business))

	f.owner = f.newUser(t, "Otto", "otto@example.com", models.RoleBarber, &f.business.ID)
	f.client = f.newUser(t, "Clara", "clara@example.com", models.RoleClient, nil)

	f.service = &models.Service{BusinessID: f.business.ID, Name: "Corte", Price: 40, DurationMinutes: 30, IsActive: true}
	require.NoError(t, f.services.CreateService(ctx, f.service))

	return f
}

func (f *fixture) newUser(t *testing.T, name, email string, role models.UserRole, businessID *string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, PasswordHash: "x", Role: role, BusinessID: businessID, IsActive: true}
	require.NoError(t, f.users.CreateUser(context.Background(), u))
	return u
}

func (f *fixture) create() *CreateAppointment {
	return NewCreateAppointment(f.appointments, f.services, f.users, nil)
}

func (f *fixture) input(start, end string) CreateAppointmentInput {
	return CreateAppointmentInput{
		OwnerID:    f.owner.ID,
		ClientID:   f.client.ID,
		BusinessID: f.business.ID,
		ServiceID:  f.service.ID,
		StartTime:  at(start),
		EndTime:    at(end),
	}
}

package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/models"
	"github.com/BruksfildServices01/studiobook/internal/pagination"
)

func paginationParams(page, limit int) pagination.Params {
	return pagination.Params{Page: page, Limit: limit}
}

func TestListByDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.create().Execute(ctx, f.input("14:00", "14:30"))
	require.NoError(t, err)
	_, err = f.create().Execute(ctx, f.input("09:00", "09:30"))
	require.NoError(t, err)

	uc := NewListAppointmentsByDate(f.appointments, f.businesses, f.users, f.services)

	rows, err := uc.Execute(ctx, f.business.ID, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "09:00", rows[0].StartTime.Format("15:04"))
	assert.Equal(t, "Clara", rows[0].ClientName)
	assert.Equal(t, "Corte", rows[0].ServiceName)

	empty, err := uc.Execute(ctx, f.business.ID, "2026-03-03")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = uc.Execute(ctx, f.business.ID, "03/02/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = uc.Execute(ctx, "missing", "2026-03-02")
	assert.ErrorIs(t, err, domain.ErrBusinessNotFound)
}

func TestListByMonth(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.create().Execute(ctx, f.input("09:00", "09:30"))
	require.NoError(t, err)

	uc := NewListAppointmentsByMonth(f.appointments, f.businesses, f.users, f.services)

	rows, err := uc.Execute(ctx, f.business.ID, 2026, 3)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	april, err := uc.Execute(ctx, f.business.ID, 2026, 4)
	require.NoError(t, err)
	assert.Empty(t, april)

	_, err = uc.Execute(ctx, f.business.ID, 2026, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.businesses.UpsertBusinessHours(ctx, f.business.ID, []models.BusinessHour{
		{Weekday: 1, OpeningTime: "09:00", ClosingTime: "11:00", IsOpen: true},
		{Weekday: 2, OpeningTime: "09:00", ClosingTime: "11:00", IsOpen: false},
	}))

	_, err := f.create().Execute(ctx, f.input("09:30", "10:00"))
	require.NoError(t, err)

	uc := NewGetAvailability(f.appointments, f.users, f.services, f.businesses)

	slots, err := uc.Execute(ctx, f.owner.ID, f.service.ID, "2026-03-02")
	require.NoError(t, err)

	var starts []string
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, starts)

	closed, err := uc.Execute(ctx, f.owner.ID, f.service.ID, "2026-03-03")
	require.NoError(t, err)
	assert.Empty(t, closed)

	noHours, err := uc.Execute(ctx, f.owner.ID, f.service.ID, "2026-03-04")
	require.NoError(t, err)
	assert.Empty(t, noHours)

	_, err = uc.Execute(ctx, f.client.ID, f.service.ID, "2026-03-02")
	assert.ErrorIs(t, err, domain.ErrBarberNotInBusiness)
}

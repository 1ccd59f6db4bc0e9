package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestUpdate_MoveWindowExcludesItself(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ap, err := f.create().Execute(ctx, f.input("10:00", "11:00"))
	require.NoError(t, err)

	update := NewUpdateAppointment(f.appointments, f.services, nil, false)

	// shifting onto a window that overlaps only its own old slot
	moved, err := update.Execute(ctx, f.client.ID, ap.ID, models.AppointmentPatch{
		StartTime: ptr(at("10:30")),
		EndTime:   ptr(at("11:30")),
	})
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.True(t, moved.StartTime.Equal(at("10:30")))
	assert.Equal(t, ap.OwnerID, moved.OwnerID)
	assert.Equal(t, ap.ClientID, moved.ClientID)
	assert.Equal(t, ap.BusinessID, moved.BusinessID)
}

func TestUpdate_ConflictWithAnotherAppointment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.create().Execute(ctx, f.input("10:00", "11:00"))
	require.NoError(t, err)
	second, err := f.create().Execute(ctx, f.input("11:00", "12:00"))
	require.NoError(t, err)

	update := NewUpdateAppointment(f.appointments, f.services, nil, false)
	_, err = update.Execute(ctx, "", second.ID, models.AppointmentPatch{StartTime: ptr(at("10:59"))})
	assert.ErrorIs(t, err, domain.ErrTimeConflict)
}

func TestUpdate_MergedWindowValidated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ap, err := f.create().Execute(ctx, f.input("10:00", "11:00"))
	require.NoError(t, err)

	update := NewUpdateAppointment(f.appointments, f.services, nil, false)
	_, err = update.Execute(ctx, "", ap.ID, models.AppointmentPatch{EndTime: ptr(at("09:00"))})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}

func TestUpdate_NotFoundAndUnknownService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	update := NewUpdateAppointment(f.appointments, f.services, nil, false)

	_, err := update.Execute(ctx, "", "missing", models.AppointmentPatch{Status: ptr(models.StatusConfirmed)})
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)

	ap, err := f.create().Execute(ctx, f.input("10:00", "11:00"))
	require.NoError(t, err)

	_, err = update.Execute(ctx, "", ap.ID, models.AppointmentPatch{ServiceID: ptr("nope")})
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}

func TestUpdate_StatusUnguardedByDefault(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ap, err := f.create().Execute(ctx, f.input("10:00", "11:00"))
	require.NoError(t, err)

	update := NewUpdateAppointment(f.appointments, f.services, nil, false)

	done, err := update.Execute(ctx, "", ap.ID, models.AppointmentPatch{Status: ptr(models.StatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)

	// terminal statuses can be rewritten through the generic path
	back, err := update.Execute(ctx, "", ap.ID, models.AppointmentPatch{Status: ptr(models.StatusPending)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, back.Status)
}

func TestUpdate_StrictTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ap, err := f.create().Execute(ctx, f.input("10:00", "11:00"))
	require.NoError(t, err)

	update := NewUpdateAppointment(f.appointments, f.services, nil, true)

	_, err = update.Execute(ctx, "", ap.ID, models.AppointmentPatch{Status: ptr(models.StatusConfirmed)})
	require.NoError(t, err)

	_, err = update.Execute(ctx, "", ap.ID, models.AppointmentPatch{Status: ptr(models.StatusPending)})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdate_RevivingCancelledChecksConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.create().Execute(ctx, f.input("10:00", "11:00"))
	require.NoError(t, err)
	_, err = NewCancelAppointment(f.appointments, nil).Execute(ctx, "", first.ID)
	require.NoError(t, err)

	_, err = f.create().Execute(ctx, f.input("10:00", "11:00"))
	require.NoError(t, err)

	update := NewUpdateAppointment(f.appointments, f.services, nil, false)
	_, err = update.Execute(ctx, "", first.ID, models.AppointmentPatch{Status: ptr(models.StatusPending)})
	assert.ErrorIs(t, err, domain.ErrTimeConflict)
}

func TestUpdate_EmptyPatchReturnsCurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ap, err := f.create().Execute(ctx, f.input("10:00", "11:00"))
	require.NoError(t, err)

	got, err := NewUpdateAppointment(f.appointments, f.services, nil, false).
		Execute(ctx, "", ap.ID, models.AppointmentPatch{})
	require.NoError(t, err)
	assert.Equal(t, ap.ID, got.ID)
}

func TestDeleteAndComplete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ap, err := f.create().Execute(ctx, f.input("10:00", "11:00"))
	require.NoError(t, err)

	done, err := NewCompleteAppointment(f.appointments, nil).Execute(ctx, "", ap.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)

	del := NewDeleteAppointment(f.appointments, nil)
	require.NoError(t, del.Execute(ctx, "", ap.ID))
	assert.ErrorIs(t, del.Execute(ctx, "", ap.ID), domain.ErrAppointmentNotFound)

	_, err = NewCancelAppointment(f.appointments, nil).Execute(ctx, "", ap.ID)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestFindAppointments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, w := range [][2]string{{"09:00", "09:30"}, {"10:00", "10:30"}, {"11:00", "11:30"}} {
		_, err := f.create().Execute(ctx, f.input(w[0], w[1]))
		require.NoError(t, err)
	}

	q := NewFindAppointments(f.appointments)

	page, err := q.All(ctx, paginationParams(2, 2))
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Pages)
	require.Len(t, page.Data, 1)
	assert.True(t, page.Data[0].StartTime.Equal(at("09:00")))

	byOwner, err := q.ByOwner(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Len(t, byOwner, 3)

	none, err := q.ByClient(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	ranged, err := q.ByDateRange(ctx, at("09:30"), at("11:00").Add(30*time.Minute))
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	_, err = q.ByDateRange(ctx, at("11:00"), at("09:00"))
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	missing, err := q.ByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// interleavedRepo runs a concurrent write right before the transaction
// of the use case opens.
type interleavedRepo struct {
	domain.Repository
	before func()
}

func (r *interleavedRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	if r.before != nil {
		r.before()
		r.before = nil
	}
	return r.Repository.Transaction(ctx, fn)
}

func TestUpdate_MergesWithRowStoredAtWriteTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ap, err := f.create().Execute(ctx, f.input("10:00", "10:30"))
	require.NoError(t, err)

	repo := &interleavedRepo{
		Repository: f.appointments,
		before: func() {
			_, err := f.appointments.Update(ctx, ap.ID, models.AppointmentPatch{EndTime: ptr(at("10:10"))})
			require.NoError(t, err)
		},
	}

	update := NewUpdateAppointment(repo, f.services, nil, false)
	_, err = update.Execute(ctx, "", ap.ID, models.AppointmentPatch{StartTime: ptr(at("10:20"))})
	require.ErrorIs(t, err, domain.ErrInvalidWindow)

	stored, err := f.appointments.FindByID(ctx, ap.ID)
	require.NoError(t, err)
	assert.True(t, stored.StartTime.Before(stored.EndTime))
	assert.True(t, stored.StartTime.Equal(at("10:00")))
}

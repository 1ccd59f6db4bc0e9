package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studiobook/internal/httperr"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus())
}

func TestCancel_OneWay(t *testing.T) {
	ap := &models.Appointment{Status: StatusPending}

	require.NoError(t, Cancel(ap))
	assert.Equal(t, StatusCancelled, ap.Status)

	err := Cancel(ap)
	require.ErrorIs(t, err, ErrAlreadyCancelled)

	kind, ok := httperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, httperr.KindInvalidState, kind)
	assert.Equal(t, "Appointment is already cancelled", err.Error())
}

func TestCanCancel(t *testing.T) {
	for _, st := range []Status{StatusPending, StatusConfirmed, StatusCompleted} {
		assert.NoError(t, CanCancel(st), st)
	}
	assert.Error(t, CanCancel(StatusCancelled))
	assert.ErrorIs(t, CanCancel(Status("ARCHIVED")), ErrInvalidTransition)
}

func TestCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusCancelled, StatusCompleted},
		StatusConfirmed: {StatusCompleted, StatusCancelled},
	}
	all := []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

	for _, from := range all {
		for _, to := range all {
			want := from == to
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}

			err := CanTransition(from, to)
			if want {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestParseAppointmentStatus(t *testing.T) {
	st, err := models.ParseAppointmentStatus("CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, st)

	_, err = models.ParseAppointmentStatus("confirmed")
	assert.Error(t, err)
}

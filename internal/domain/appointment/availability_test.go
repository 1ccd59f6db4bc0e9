package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/studiobook/internal/models"
)

func TestFreeSlots(t *testing.T) {
	existing := []models.Appointment{
		{StartTime: at("10:00"), EndTime: at("10:30"), Status: StatusConfirmed},
		{StartTime: at("11:00"), EndTime: at("11:30"), Status: StatusCancelled},
	}

	slots := FreeSlots(at("09:00"), at("12:00"), 30*time.Minute, existing)

	var starts []string
	for _, s := range slots {
		starts = append(starts, s.Start.Format("15:04"))
	}
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, starts)
}

func TestFreeSlots_LastSlotMustFit(t *testing.T) {
	slots := FreeSlots(at("09:00"), at("10:15"), 30*time.Minute, nil)
	assert.Len(t, slots, 2)
}

func TestFreeSlots_ZeroDuration(t *testing.T) {
	assert.Empty(t, FreeSlots(at("09:00"), at("10:00"), 0, nil))
}

func TestComplete(t *testing.T) {
	ap := &models.Appointment{Status: StatusConfirmed}
	assert.NoError(t, Complete(ap))
	assert.Equal(t, StatusCompleted, ap.Status)
	assert.ErrorIs(t, Complete(ap), ErrAlreadyCompleted)

	cancelled := &models.Appointment{Status: StatusCancelled}
	assert.ErrorIs(t, Complete(cancelled), ErrInvalidTransition)
}

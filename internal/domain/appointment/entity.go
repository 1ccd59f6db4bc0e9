package appointment

import (
	"time"

	"github.com/BruksfildServices01/studiobook/internal/httperr"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

var (
	ErrInvalidWindow    = httperr.ErrInvalidState("invalid_time_window", "End time must be after start time")
	ErrAlreadyCompleted = httperr.ErrInvalidState("already_completed", "Appointment is already completed")
)

// ===============================
// Domain Actions
// ===============================

// Cancel moves the appointment to CANCELLED. It is one-way.
func Cancel(ap *models.Appointment) error {
	if err := CanCancel(ap.Status); err != nil {
		return err
	}
	ap.Status = StatusCancelled
	return nil
}

// Complete marks a pending or confirmed appointment as done.
func Complete(ap *models.Appointment) error {
	switch ap.Status {
	case StatusCompleted:
		return ErrAlreadyCompleted
	case StatusPending, StatusConfirmed:
		ap.Status = StatusCompleted
		return nil
	}
	return ErrInvalidTransition
}

// ValidateWindow rejects empty and inverted intervals.
func ValidateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidWindow
	}
	return nil
}

// MergeWindow returns the window that results from applying the patch
// on top of the stored appointment.
func MergeWindow(ap *models.Appointment, patch models.AppointmentPatch) (time.Time, time.Time) {
	start, end := ap.StartTime, ap.EndTime
	if patch.StartTime != nil {
		start = *patch.StartTime
	}
	if patch.EndTime != nil {
		end = *patch.EndTime
	}
	return start, end
}

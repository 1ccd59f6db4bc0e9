package appointment

import (
	"github.com/BruksfildServices01/studiobook/internal/httperr"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status = models.AppointmentStatus

const (
	StatusPending   = models.StatusPending
	StatusConfirmed = models.StatusConfirmed
	StatusCancelled = models.StatusCancelled
	StatusCompleted = models.StatusCompleted
)

var (
	ErrAlreadyCancelled  = httperr.ErrInvalidState("already_cancelled", "Appointment is already cancelled")
	ErrInvalidTransition = httperr.ErrInvalidState("invalid_status_transition", "Invalid status transition")
)

// ===============================
// Validations
// ===============================

// InitialStatus is the status every new appointment starts in.
func InitialStatus() Status {
	return StatusPending
}

// CanCancel allows cancelling anything that is not cancelled yet.
func CanCancel(current Status) error {
	switch current {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusPending, StatusConfirmed, StatusCompleted:
		return nil
	}
	return ErrInvalidTransition
}

// CanTransition is the strict transition table, applied to generic
// status updates only when strict mode is enabled. Writing the current
// status again is always allowed.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}

	var allowed bool
	switch from {
	case StatusPending:
		allowed = to == StatusConfirmed || to == StatusCancelled || to == StatusCompleted
	case StatusConfirmed:
		allowed = to == StatusCompleted || to == StatusCancelled
	case StatusCancelled, StatusCompleted:
		allowed = false
	}

	if !allowed {
		return ErrInvalidTransition
	}
	return nil
}

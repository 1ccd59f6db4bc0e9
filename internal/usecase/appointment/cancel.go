package appointment

import (
	"context"

	"github.com/BruksfildServices01/studiobook/internal/audit"
	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute changes only the status. A cancelled slot is free again.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actorID string,
	id string,
) (*models.Appointment, error) {

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, domain.ErrAppointmentNotFound
	}

	if err := domain.Cancel(ap); err != nil {
		return nil, err
	}

	status := ap.Status
	updated, err := uc.repo.Update(ctx, id, models.AppointmentPatch{Status: &status})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrAppointmentNotFound
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: updated.BusinessID,
		UserID:     optionalID(actorID),
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   &updated.ID,
	})

	return updated, nil
}

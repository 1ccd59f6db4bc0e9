package appointment

import (
	"context"

	"github.com/BruksfildServices01/studiobook/internal/audit"
	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
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

	if err := domain.Complete(ap); err != nil {
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
		Action:     "appointment_completed",
		Entity:     "appointment",
		EntityID:   &updated.ID,
	})

	return updated, nil
}

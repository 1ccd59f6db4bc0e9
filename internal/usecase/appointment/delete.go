package appointment

import (
	"context"

	"github.com/BruksfildServices01/studiobook/internal/audit"
	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute hard-deletes the appointment.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actorID string,
	id string,
) error {

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if ap == nil {
		return domain.ErrAppointmentNotFound
	}

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrAppointmentNotFound
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		UserID:     optionalID(actorID),
		Action:     "appointment_deleted",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"owner_id":   ap.OwnerID,
			"start_time": ap.StartTime,
		},
	})

	return nil
}

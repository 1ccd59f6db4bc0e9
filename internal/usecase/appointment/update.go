package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/studiobook/internal/audit"
	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/httperr"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

type UpdateAppointment struct {
	repo     domain.Repository
	services domain.ServiceLookup
	audit    *audit.Dispatcher

	// strict applies the status transition table to patches.
	strict bool
}

func NewUpdateAppointment(
	repo domain.Repository,
	services domain.ServiceLookup,
	audit *audit.Dispatcher,
	strict bool,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:     repo,
		services: services,
		audit:    audit,
		strict:   strict,
	}
}

// Execute applies the patch. Owner, client and business never change.
// A nil result with nil error means the row vanished before the write.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actorID string,
	id string,
	patch models.AppointmentPatch,
) (*models.Appointment, error) {

	current, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrAppointmentNotFound
	}

	if patch.ServiceID != nil {
		service, err := uc.services.GetServiceByID(ctx, *patch.ServiceID)
		if err != nil {
			return nil, err
		}
		if service == nil {
			return nil, domain.ErrServiceNotFound
		}
	}

	if patch.Empty() {
		return current, nil
	}

	// The row is read again under the owner lock: concurrent partial
	// patches must merge with what is stored now, not with the first read.
	var updated *models.Appointment
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockOwner(ctx, current.OwnerID); err != nil {
			return err
		}

		fresh, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if fresh == nil {
			return nil
		}

		if err := uc.check(fresh, patch); err != nil {
			return err
		}

		if needsConflictScan(fresh, patch) {
			start, end := domain.MergeWindow(fresh, patch)
			conflicts, err := tx.FindConflicting(ctx, fresh.OwnerID, start, end, fresh.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return domain.ErrTimeConflict
			}
		}

		updated, err = tx.Update(ctx, id, patch)
		return err
	})

	if err != nil {
		if errors.Is(err, domain.ErrTimeConflict) || httperr.IsExclusionConflict(err) {
			uc.audit.Dispatch(audit.Event{
				BusinessID: current.BusinessID,
				UserID:     optionalID(actorID),
				Action:     "appointment_conflict",
				Entity:     "appointment",
				EntityID:   &current.ID,
			})
			return nil, domain.ErrTimeConflict
		}
		return nil, err
	}

	if updated == nil {
		return nil, nil
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: updated.BusinessID,
		UserID:     optionalID(actorID),
		Action:     "appointment_updated",
		Entity:     "appointment",
		EntityID:   &updated.ID,
		Metadata:   patchMetadata(patch),
	})

	return updated, nil
}

// check validates the patch against the row it will be written on.
func (uc *UpdateAppointment) check(current *models.Appointment, patch models.AppointmentPatch) error {
	if patch.Status != nil && uc.strict {
		if err := domain.CanTransition(current.Status, *patch.Status); err != nil {
			return err
		}
	}
	if patch.ChangesWindow() {
		start, end := domain.MergeWindow(current, patch)
		if err := domain.ValidateWindow(start, end); err != nil {
			return err
		}
	}
	return nil
}

// needsConflictScan is true when the patch makes the appointment occupy
// time it did not occupy before: a moved window or a revived
// cancellation. Patches that leave it cancelled never conflict.
func needsConflictScan(current *models.Appointment, patch models.AppointmentPatch) bool {
	next := current.Status
	if patch.Status != nil {
		next = *patch.Status
	}
	if next == models.StatusCancelled {
		return false
	}
	return patch.ChangesWindow() || current.Status == models.StatusCancelled
}

func patchMetadata(p models.AppointmentPatch) map[string]any {
	meta := map[string]any{}
	if p.ServiceID != nil {
		meta["service_id"] = *p.ServiceID
	}
	if p.StartTime != nil {
		meta["start_time"] = p.StartTime.UTC()
	}
	if p.EndTime != nil {
		meta["end_time"] = p.EndTime.UTC()
	}
	if p.Status != nil {
		meta["status"] = *p.Status
	}
	return meta
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

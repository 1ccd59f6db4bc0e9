package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/studiobook/internal/audit"
	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/httperr"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	OwnerID    string
	ClientID   string
	BusinessID string

	ServiceID string
	StartTime time.Time
	EndTime   time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	services domain.ServiceLookup
	users    domain.UserLookup
	audit    *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	services domain.ServiceLookup,
	users domain.UserLookup,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		services: services,
		users:    users,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Service
	// --------------------------------------------------
	service, err := uc.services.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrServiceNotFound
	}

	// --------------------------------------------------
	// 2. Barber and business membership
	// --------------------------------------------------
	owner, err := uc.users.GetUserByID(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrBarberNotFound
	}
	if !owner.WorksAt(in.BusinessID) {
		return nil, domain.ErrBarberNotInBusiness
	}

	// --------------------------------------------------
	// 3. Client
	// --------------------------------------------------
	client, err := uc.users.GetUserByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}

	// --------------------------------------------------
	// 4. Window
	// --------------------------------------------------
	start, end := in.StartTime.UTC(), in.EndTime.UTC()
	if err := domain.ValidateWindow(start, end); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Conflict check + insert under the owner lock
	// --------------------------------------------------
	ap := &models.Appointment{
		OwnerID:    owner.ID,
		ClientID:   client.ID,
		BusinessID: in.BusinessID,
		ServiceID:  service.ID,
		StartTime:  start,
		EndTime:    end,
		Status:     domain.InitialStatus(),
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockOwner(ctx, owner.ID); err != nil {
			return err
		}

		conflicts, err := tx.FindConflicting(ctx, owner.ID, start, end, "")
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return domain.ErrTimeConflict
		}

		return tx.Create(ctx, ap)
	})

	if err != nil {
		if errors.Is(err, domain.ErrTimeConflict) || httperr.IsExclusionConflict(err) {
			uc.audit.Dispatch(audit.Event{
				BusinessID: in.BusinessID,
				UserID:     &client.ID,
				Action:     "appointment_conflict",
				Entity:     "appointment",
				Metadata: map[string]any{
					"owner_id": owner.ID,
					"start":    start,
					"end":      end,
				},
			})
			return nil, domain.ErrTimeConflict
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		UserID:     &client.ID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}

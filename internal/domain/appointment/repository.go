package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studiobook/internal/models"
)

// Repository is the appointment store. Finders return (nil, nil) when
// the row does not exist.
type Repository interface {
	// -------- Transactions --------
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// LockOwner serializes schedule changes of one owner until the
	// surrounding transaction ends.
	LockOwner(
		ctx context.Context,
		ownerID string,
	) error

	// -------- Conflict --------
	FindConflicting(
		ctx context.Context,
		ownerID string,
		start time.Time,
		end time.Time,
		excludeID string,
	) ([]models.Appointment, error)

	// -------- CRUD --------
	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	FindByID(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	Update(
		ctx context.Context,
		id string,
		patch models.AppointmentPatch,
	) (*models.Appointment, error)

	Delete(
		ctx context.Context,
		id string,
	) (bool, error)

	// -------- Listing --------
	FindAll(
		ctx context.Context,
		limit int,
		offset int,
	) ([]models.Appointment, int64, error)

	FindByOwnerID(ctx context.Context, ownerID string) ([]models.Appointment, error)
	FindByClientID(ctx context.Context, clientID string) ([]models.Appointment, error)
	FindByBusinessID(ctx context.Context, businessID string) ([]models.Appointment, error)

	FindByBusinessInPeriod(
		ctx context.Context,
		businessID string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	FindByOwnerInPeriod(
		ctx context.Context,
		ownerID string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	FindByDateRange(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

// Read-only collaborators. All return (nil, nil) on miss.

type ServiceLookup interface {
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type BusinessLookup interface {
	GetBusinessByID(ctx context.Context, id string) (*models.Business, error)
	GetBusinessHour(ctx context.Context, businessID string, weekday int) (*models.BusinessHour, error)
}

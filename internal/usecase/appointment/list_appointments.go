package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/models"
	"github.com/BruksfildServices01/studiobook/internal/pagination"
)

// FindAppointments groups the read-only appointment lookups.
type FindAppointments struct {
	repo domain.Repository
}

func NewFindAppointments(repo domain.Repository) *FindAppointments {
	return &FindAppointments{repo: repo}
}

// All returns one page, newest start first.
func (uc *FindAppointments) All(
	ctx context.Context,
	p pagination.Params,
) (pagination.Result[models.Appointment], error) {

	apps, total, err := uc.repo.FindAll(ctx, p.Limit, p.Offset())
	if err != nil {
		return pagination.Result[models.Appointment]{}, err
	}
	return pagination.NewResult(apps, p, total), nil
}

// ByID returns nil when the appointment does not exist.
func (uc *FindAppointments) ByID(ctx context.Context, id string) (*models.Appointment, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *FindAppointments) ByOwner(ctx context.Context, ownerID string) ([]models.Appointment, error) {
	return nonNil(uc.repo.FindByOwnerID(ctx, ownerID))
}

func (uc *FindAppointments) ByClient(ctx context.Context, clientID string) ([]models.Appointment, error) {
	return nonNil(uc.repo.FindByClientID(ctx, clientID))
}

func (uc *FindAppointments) ByBusiness(ctx context.Context, businessID string) ([]models.Appointment, error) {
	return nonNil(uc.repo.FindByBusinessID(ctx, businessID))
}

// ByDateRange returns appointments fully contained in [from, to].
func (uc *FindAppointments) ByDateRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidWindow
	}
	return nonNil(uc.repo.FindByDateRange(ctx, from, to))
}

func nonNil(apps []models.Appointment, err error) ([]models.Appointment, error) {
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.Appointment{}
	}
	return apps, nil
}

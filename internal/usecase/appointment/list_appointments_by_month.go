package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/dto"
	"github.com/BruksfildServices01/studiobook/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo       domain.Repository
	businesses domain.BusinessLookup
	agenda     *agendaBuilder
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	businesses domain.BusinessLookup,
	users domain.UserLookup,
	services domain.ServiceLookup,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo:       repo,
		businesses: businesses,
		agenda:     &agendaBuilder{users: users, services: services},
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	businessID string,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, domain.ErrInvalidPeriod
	}

	shop, err := uc.businesses.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrBusinessNotFound
	}

	loc := timezone.Location(shop.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.FindByBusinessInPeriod(ctx, businessID, start, end)
	if err != nil {
		return nil, err
	}

	return uc.agenda.build(ctx, appointments, loc)
}

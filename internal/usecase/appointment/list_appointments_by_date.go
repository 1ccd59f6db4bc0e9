package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/dto"
	"github.com/BruksfildServices01/studiobook/internal/models"
	"github.com/BruksfildServices01/studiobook/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo       domain.Repository
	businesses domain.BusinessLookup
	agenda     *agendaBuilder
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	businesses domain.BusinessLookup,
	users domain.UserLookup,
	services domain.ServiceLookup,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:       repo,
		businesses: businesses,
		agenda:     &agendaBuilder{users: users, services: services},
	}
}

// Execute lists the business agenda for one calendar day ("2006-01-02")
// in the business timezone.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	businessID string,
	date string,
) ([]dto.AppointmentListDTO, error) {

	shop, err := uc.businesses.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrBusinessNotFound
	}

	loc := timezone.Location(shop.Timezone)

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	start, end := timezone.DayBounds(day, loc)

	appointments, err := uc.repo.FindByBusinessInPeriod(ctx, businessID, start, end)
	if err != nil {
		return nil, err
	}

	return uc.agenda.build(ctx, appointments, loc)
}

// agendaBuilder resolves client and service names for agenda rows,
// caching per call.
type agendaBuilder struct {
	users    domain.UserLookup
	services domain.ServiceLookup
}

func (b *agendaBuilder) build(
	ctx context.Context,
	appointments []models.Appointment,
	loc *time.Location,
) ([]dto.AppointmentListDTO, error) {

	clients := map[string]string{}
	services := map[string]string{}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		clientName, ok := clients[ap.ClientID]
		if !ok {
			u, err := b.users.GetUserByID(ctx, ap.ClientID)
			if err != nil {
				return nil, err
			}
			if u != nil {
				clientName = u.Name
			}
			clients[ap.ClientID] = clientName
		}

		serviceName, ok := services[ap.ServiceID]
		if !ok {
			s, err := b.services.GetServiceByID(ctx, ap.ServiceID)
			if err != nil {
				return nil, err
			}
			if s != nil {
				serviceName = s.Name
			}
			services[ap.ServiceID] = serviceName
		}

		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			OwnerID:     ap.OwnerID,
			ClientID:    ap.ClientID,
			ServiceID:   ap.ServiceID,
			StartTime:   ap.StartTime.In(loc),
			EndTime:     ap.EndTime.In(loc),
			Status:      string(ap.Status),
			ClientName:  clientName,
			ServiceName: serviceName,
		})
	}

	return out, nil
}

package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/dto"
	"github.com/BruksfildServices01/studiobook/internal/timezone"
)

type GetAvailability struct {
	repo       domain.Repository
	users      domain.UserLookup
	services   domain.ServiceLookup
	businesses domain.BusinessLookup
}

func NewGetAvailability(
	repo domain.Repository,
	users domain.UserLookup,
	services domain.ServiceLookup,
	businesses domain.BusinessLookup,
) *GetAvailability {
	return &GetAvailability{
		repo:       repo,
		users:      users,
		services:   services,
		businesses: businesses,
	}
}

// Execute returns the free "HH:MM" slots of the barber on the given day
// for the service duration.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	ownerID string,
	serviceID string,
	date string,
) ([]dto.TimeSlotDTO, error) {

	owner, err := uc.users.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrBarberNotFound
	}
	if owner.BusinessID == nil {
		return nil, domain.ErrBarberNotInBusiness
	}

	service, err := uc.services.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrServiceNotFound
	}

	shop, err := uc.businesses.GetBusinessByID(ctx, *owner.BusinessID)
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

	slots := []dto.TimeSlotDTO{}

	hours, err := uc.businesses.GetBusinessHour(ctx, shop.ID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}
	if hours == nil || !hours.IsOpen {
		return slots, nil
	}

	open, err := timezone.ClockOn(day, hours.OpeningTime, loc)
	if err != nil {
		return slots, nil
	}
	closeAt, err := timezone.ClockOn(day, hours.ClosingTime, loc)
	if err != nil || !open.Before(closeAt) {
		return slots, nil
	}

	existing, err := uc.repo.FindByOwnerInPeriod(ctx, owner.ID, open, closeAt)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.DurationMinutes) * time.Minute
	for _, s := range domain.FreeSlots(open, closeAt, duration, existing) {
		slots = append(slots, dto.TimeSlotDTO{
			Start: s.Start.In(loc).Format("15:04"),
			End:   s.End.In(loc).Format("15:04"),
		})
	}

	return slots, nil
}

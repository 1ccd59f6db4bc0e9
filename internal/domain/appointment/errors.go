package appointment

import "github.com/BruksfildServices01/studiobook/internal/httperr"

var (
	ErrAppointmentNotFound = httperr.ErrNotFound("appointment_not_found", "Appointment not found")
	ErrServiceNotFound     = httperr.ErrNotFound("service_not_found", "Service not found")
	ErrBarberNotFound      = httperr.ErrNotFound("barber_not_found", "Barber not found")
	ErrClientNotFound      = httperr.ErrNotFound("client_not_found", "Client not found")
	ErrBusinessNotFound    = httperr.ErrNotFound("business_not_found", "Business not found")

	ErrBarberNotInBusiness = httperr.ErrInvalidState("barber_not_in_business", "Barber does not work at this barbershop")
	ErrTimeConflict        = httperr.ErrConflict("time_conflict", "Barber has a conflict with this time slot")
	ErrInvalidDate         = httperr.ErrInvalidState("invalid_date", "Invalid date")
	ErrInvalidPeriod       = httperr.ErrInvalidState("invalid_period", "Invalid year or month")
)

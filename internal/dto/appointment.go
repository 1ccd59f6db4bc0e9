package dto

import "time"

// AppointmentListDTO is the agenda row shown for a business day or month.
type AppointmentListDTO struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	ClientID    string    `json:"client_id"`
	ServiceID   string    `json:"service_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
}

type TimeSlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

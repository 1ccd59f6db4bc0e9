package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	OwnerID    string `gorm:"type:uuid;index:idx_appointments_owner_start;not null" json:"owner_id"`
	ClientID   string `gorm:"type:uuid;index;not null" json:"client_id"`
	BusinessID string `gorm:"type:uuid;index;not null" json:"business_id"`
	ServiceID  string `gorm:"type:uuid;index;not null" json:"service_id"`

	StartTime time.Time `gorm:"index:idx_appointments_owner_start;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status AppointmentStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	newID(&a.ID)
	return nil
}

// AppointmentPatch carries the mutable fields of an appointment.
// Nil fields are left untouched.
type AppointmentPatch struct {
	ServiceID *string
	StartTime *time.Time
	EndTime   *time.Time
	Status    *AppointmentStatus
}

func (p AppointmentPatch) Empty() bool {
	return p.ServiceID == nil && p.StartTime == nil && p.EndTime == nil && p.Status == nil
}

func (p AppointmentPatch) ChangesWindow() bool {
	return p.StartTime != nil || p.EndTime != nil
}

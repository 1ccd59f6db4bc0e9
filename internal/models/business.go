package models

import (
	"time"

	"gorm.io/gorm"
)

type Business struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID string `gorm:"type:uuid;index;not null" json:"owner_id"`

	Name                  string  `gorm:"size:100;not null;uniqueIndex:idx_business_name_address" json:"name"`
	Description           *string `gorm:"size:500" json:"description"`
	Phone                 *string `gorm:"size:20" json:"phone"`
	Address               string  `gorm:"size:255;not null;uniqueIndex:idx_business_name_address" json:"address"`
	Cnpj                  *string `gorm:"size:20" json:"cnpj"`
	MunicipalRegistration *string `gorm:"size:50" json:"municipal_registration"`
	CoverImage            *string `gorm:"size:255" json:"cover_image"`
	Timezone              string  `gorm:"size:64" json:"timezone"`
	IsActive              bool    `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Business) BeforeCreate(*gorm.DB) error {
	newID(&b.ID)
	return nil
}

// BusinessHour is the opening window of a business for one weekday
// (0 = Sunday). Times are "HH:MM" in the business timezone.
type BusinessHour struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BusinessID string `gorm:"type:uuid;not null;uniqueIndex:idx_business_weekday" json:"business_id"`

	Weekday     int    `gorm:"not null;uniqueIndex:idx_business_weekday" json:"weekday"`
	OpeningTime string `gorm:"size:5" json:"opening_time"`
	ClosingTime string `gorm:"size:5" json:"closing_time"`
	IsOpen      bool   `json:"is_open"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

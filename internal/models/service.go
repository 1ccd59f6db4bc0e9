package models

import (
	"time"

	"gorm.io/gorm"
)

type Service struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID string `gorm:"type:uuid;index;not null" json:"business_id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Description     *string `gorm:"size:255" json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	Category        string  `gorm:"size:50" json:"category"`
	IsActive        bool    `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	newID(&s.ID)
	return nil
}

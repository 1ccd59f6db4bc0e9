package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleClient  UserRole = "CLIENT"
	RoleBarber  UserRole = "BARBER"
	RoleOwner   UserRole = "OWNER"
	RoleManager UserRole = "MANAGER"
	RoleAdmin   UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleClient, RoleBarber, RoleOwner, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// CanManageStaff reports whether the role may create barbers and
// maintain services for its business.
func (r UserRole) CanManageStaff() bool {
	switch r {
	case RoleOwner, RoleManager, RoleAdmin:
		return true
	case RoleClient, RoleBarber:
		return false
	}
	return false
}

type User struct {
	ID         string  `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID *string `gorm:"type:uuid;index" json:"business_id"`

	Name         string   `gorm:"size:100;not null" json:"name"`
	Email        string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	Role         UserRole `gorm:"size:20;not null;default:'CLIENT'" json:"role"`
	CpfCnpj      *string  `gorm:"size:20" json:"cpf_cnpj"`
	AvatarImage  *string  `gorm:"size:255" json:"avatar_image"`
	IsActive     bool     `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	newID(&u.ID)
	return nil
}

// WorksAt reports whether the user is assigned to the given business.
func (u *User) WorksAt(businessID string) bool {
	return u.BusinessID != nil && *u.BusinessID == businessID
}

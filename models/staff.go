package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Staff struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	// Optional link to a login account for this practitioner
	UserID *uuid.UUID `gorm:"type:uuid;index"`

	Name        string `gorm:"not null"`
	Phone       string
	Specialties string
	IsActive    bool `gorm:"default:true"`

	Reservations []Reservation `gorm:"foreignKey:StaffID"`

	gorm.Model
}

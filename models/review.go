package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a customer's rating of a completed reservation.
// One review per reservation, rating is an integer between 1 and 5.
type Review struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	ReservationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	StaffID       uuid.UUID `gorm:"type:uuid;index;not null"`

	Rating  int `gorm:"not null"`
	Comment string
	Reply   string

	gorm.Model
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

package models

import (
	"github.com/google/uuid"
)

type Salon struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"not null"`
	Address      string
	Phone        string
	WorkingHours JSONB `gorm:"type:jsonb;default:'{}'"`

	ReservationReminders  bool `gorm:"default:true"`
	WhatsAppNotifications bool `gorm:"default:false"`
	SMSNotifications      bool `gorm:"default:false"`

	Users             []User             `gorm:"foreignKey:SalonID"`
	Customers         []Customer         `gorm:"foreignKey:SalonID"`
	Staff             []Staff            `gorm:"foreignKey:SalonID"`
	Services          []Service          `gorm:"foreignKey:SalonID"`
	Reservations      []Reservation      `gorm:"foreignKey:SalonID"`
	Bookings          []Booking          `gorm:"foreignKey:SalonID"`
	ReminderTemplates []ReminderTemplate `gorm:"foreignKey:SalonID"`
}

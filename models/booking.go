package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingPaid      BookingStatus = "paid"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending: {BookingPaid, BookingCancelled},
	// A paid booking can still be cancelled (refund), cancelled is terminal.
	BookingPaid: {BookingCancelled},
}

func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking is the billing record for one or more reservations.
// FinalAmount is always Total - Discount, recomputed server side.
type Booking struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SalonID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	BookingNumber string    `gorm:"uniqueIndex;not null"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	BookingDate   time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	Total       float64 `gorm:"type:decimal(10,2);not null"`
	Discount    float64 `gorm:"type:decimal(10,2);default:0.0"`
	FinalAmount float64 `gorm:"type:decimal(10,2);not null"`

	Status             BookingStatus `gorm:"type:varchar(20);default:'pending';not null"`
	PaymentMethod      string
	PaidAt             *time.Time
	CancellationReason string
	Notes              string

	Items []BookingItem `gorm:"foreignKey:BookingID"`

	gorm.Model
}

type BookingItem struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	BookingID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	ReservationID *uuid.UUID `gorm:"type:uuid;index"`
	ServiceID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	ServiceName   string     `gorm:"not null"`
	Quantity      int        `gorm:"default:1"`
	UnitPrice     float64    `gorm:"type:decimal(10,2);not null"`
	TotalPrice    float64    `gorm:"type:decimal(10,2);not null"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
	ReservationNoShow    ReservationStatus = "no_show"
)

// reservationTransitions lists the allowed next statuses for each state.
// cancelled, completed and no_show are terminal.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCompleted, ReservationCancelled, ReservationNoShow},
}

// CanTransition reports whether a reservation may move from one status to another.
func (s ReservationStatus) CanTransition(to ReservationStatus) bool {
	for _, next := range reservationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Blocking reports whether a reservation in this status still occupies
// its staff time slot. Cancelled and no-show reservations free the slot.
func (s ReservationStatus) Blocking() bool {
	return s != ReservationCancelled && s != ReservationNoShow
}

type Reservation struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SalonID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	StaffID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID  uuid.UUID `gorm:"type:uuid;index;not null"`

	StartTime time.Time         `gorm:"index;not null"`
	EndTime   time.Time         `gorm:"not null"`
	Status    ReservationStatus `gorm:"type:varchar(20);default:'pending';not null"`

	Notes              string
	CancellationReason string

	Customer Customer `gorm:"foreignKey:CustomerID"`
	Staff    Staff    `gorm:"foreignKey:StaffID"`
	Service  Service  `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{"pending to confirmed", ReservationPending, ReservationConfirmed, true},
		{"pending to cancelled", ReservationPending, ReservationCancelled, true},
		{"pending to completed", ReservationPending, ReservationCompleted, false},
		{"pending to no_show", ReservationPending, ReservationNoShow, false},
		{"confirmed to completed", ReservationConfirmed, ReservationCompleted, true},
		{"confirmed to cancelled", ReservationConfirmed, ReservationCancelled, true},
		{"confirmed to no_show", ReservationConfirmed, ReservationNoShow, true},
		{"confirmed to pending", ReservationConfirmed, ReservationPending, false},
		{"cancelled is terminal", ReservationCancelled, ReservationConfirmed, false},
		{"cancelled to cancelled", ReservationCancelled, ReservationCancelled, false},
		{"completed is terminal", ReservationCompleted, ReservationCancelled, false},
		{"no_show is terminal", ReservationNoShow, ReservationConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestReservationStatusBlocking(t *testing.T) {
	assert.True(t, ReservationPending.Blocking())
	assert.True(t, ReservationConfirmed.Blocking())
	assert.True(t, ReservationCompleted.Blocking())
	assert.False(t, ReservationCancelled.Blocking())
	assert.False(t, ReservationNoShow.Blocking())
}

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to paid", BookingPending, BookingPaid, true},
		{"pending to cancelled", BookingPending, BookingCancelled, true},
		{"paid to cancelled", BookingPaid, BookingCancelled, true},
		{"paid to pending", BookingPaid, BookingPending, false},
		{"cancelled is terminal", BookingCancelled, BookingPending, false},
		{"cancelled to paid", BookingCancelled, BookingPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

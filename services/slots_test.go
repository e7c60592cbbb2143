package services

import (
	"testing"
	"time"

	"salonbook-backend/models"

	"github.com/stretchr/testify/assert"
)

func day(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func reservationAt(startH, startM, endH, endM int) models.Reservation {
	return models.Reservation{
		StartTime: day(startH, startM),
		EndTime:   day(endH, endM),
		Status:    models.ReservationConfirmed,
	}
}

func TestFreeSlots(t *testing.T) {
	open := day(9, 0)
	close := day(18, 0)

	t.Run("empty day returns the whole window", func(t *testing.T) {
		slots := FreeSlots(open, close, nil)
		assert.Equal(t, []TimeSlot{{Start: open, End: close}}, slots)
	})

	t.Run("single reservation splits the window", func(t *testing.T) {
		slots := FreeSlots(open, close, []models.Reservation{reservationAt(12, 0, 13, 0)})
		assert.Equal(t, []TimeSlot{
			{Start: open, End: day(12, 0)},
			{Start: day(13, 0), End: close},
		}, slots)
	})

	t.Run("back to back reservations leave no gap between them", func(t *testing.T) {
		slots := FreeSlots(open, close, []models.Reservation{
			reservationAt(10, 0, 11, 0),
			reservationAt(11, 0, 12, 30),
		})
		assert.Equal(t, []TimeSlot{
			{Start: open, End: day(10, 0)},
			{Start: day(12, 30), End: close},
		}, slots)
	})

	t.Run("reservation spilling past closing is clipped", func(t *testing.T) {
		slots := FreeSlots(open, close, []models.Reservation{reservationAt(17, 0, 19, 0)})
		assert.Equal(t, []TimeSlot{{Start: open, End: day(17, 0)}}, slots)
	})

	t.Run("reservation before opening is ignored", func(t *testing.T) {
		slots := FreeSlots(open, close, []models.Reservation{reservationAt(7, 0, 8, 30)})
		assert.Equal(t, []TimeSlot{{Start: open, End: close}}, slots)
	})

	t.Run("fully booked day returns no slots", func(t *testing.T) {
		slots := FreeSlots(open, close, []models.Reservation{reservationAt(9, 0, 18, 0)})
		assert.Empty(t, slots)
	})
}

func TestWorkingWindow(t *testing.T) {
	// 2026-03-10 is a Tuesday.
	date := day(12, 0)

	t.Run("no configured hours falls back to defaults", func(t *testing.T) {
		open, close, closed := workingWindow(models.JSONB{}, date)
		assert.False(t, closed)
		assert.Equal(t, day(9, 0), open)
		assert.Equal(t, day(20, 0), close)
	})

	t.Run("configured hours are used", func(t *testing.T) {
		hours := models.JSONB{
			"tuesday": map[string]interface{}{"open": "10:30", "close": "19:00"},
		}
		open, close, closed := workingWindow(hours, date)
		assert.False(t, closed)
		assert.Equal(t, day(10, 30), open)
		assert.Equal(t, day(19, 0), close)
	})

	t.Run("closed day is reported", func(t *testing.T) {
		hours := models.JSONB{
			"tuesday": map[string]interface{}{"closed": true},
		}
		_, _, closed := workingWindow(hours, date)
		assert.True(t, closed)
	})

	t.Run("malformed clock keeps the default", func(t *testing.T) {
		hours := models.JSONB{
			"tuesday": map[string]interface{}{"open": "noon", "close": "19:00"},
		}
		open, close, closed := workingWindow(hours, date)
		assert.False(t, closed)
		assert.Equal(t, day(9, 0), open)
		assert.Equal(t, day(19, 0), close)
	})
}

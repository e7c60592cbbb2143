// services/reservation_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Publisher pushes lifecycle events to the message broker. A nil
// publisher disables event publishing.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type ReservationService struct {
	db       *gorm.DB
	holds    SlotHolder
	producer Publisher
	topic    string
	holdTTL  time.Duration
}

func NewReservationService(db *gorm.DB, holds SlotHolder, producer Publisher, topic string) *ReservationService {
	return &ReservationService{
		db:       db,
		holds:    holds,
		producer: producer,
		topic:    topic,
		holdTTL:  10 * time.Second,
	}
}

type CreateReservationInput struct {
	CustomerID uuid.UUID  `json:"customerId" binding:"required"`
	StaffID    uuid.UUID  `json:"staffId" binding:"required"`
	ServiceID  uuid.UUID  `json:"serviceId" binding:"required"`
	StartTime  time.Time  `json:"startTime" binding:"required"`
	EndTime    *time.Time `json:"endTime"`
	Notes      string     `json:"notes"`
}

type UpdateReservationInput struct {
	StaffID   *uuid.UUID `json:"staffId"`
	ServiceID *uuid.UUID `json:"serviceId"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Notes     *string    `json:"notes"`
}

// Create validates the referenced records, checks the staff slot for
// conflicts and inserts the reservation as pending. The conflict check
// and insert run in one transaction; a short redis hold on the
// staff/start pair narrows the race between concurrent creates.
func (s *ReservationService) Create(ctx context.Context, salonID, userID uuid.UUID, input CreateReservationInput) (*models.Reservation, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, input.CustomerID).
		First(&customer).Error; err != nil {
		return nil, lookupErr(err, "customer")
	}

	var staff models.Staff
	if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, input.StaffID).
		First(&staff).Error; err != nil {
		return nil, lookupErr(err, "staff")
	}

	var service models.Service
	if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, input.ServiceID).
		First(&service).Error; err != nil {
		return nil, lookupErr(err, "service")
	}

	endTime := input.StartTime.Add(time.Duration(service.Duration) * time.Minute)
	if input.EndTime != nil {
		endTime = *input.EndTime
	}
	if !utils.ValidateTimeRange(input.StartTime, endTime) {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}

	if s.holds != nil {
		acquired, err := s.holds.AcquireSlotHold(ctx, input.StaffID, input.StartTime, s.holdTTL)
		if err != nil {
			log.Printf("Slot hold unavailable, falling back to transaction check: %v", err)
		} else if !acquired {
			return nil, ErrSlotNotAvailable
		} else {
			defer func() {
				if err := s.holds.ReleaseSlotHold(ctx, input.StaffID, input.StartTime); err != nil {
					log.Printf("Failed to release slot hold: %v", err)
				}
			}()
		}
	}

	reservation := models.Reservation{
		ID:              uuid.New(),
		SalonID:         salonID,
		CreatedByUserID: userID,
		CustomerID:      input.CustomerID,
		StaffID:         input.StaffID,
		ServiceID:       input.ServiceID,
		StartTime:       input.StartTime,
		EndTime:         endTime,
		Status:          models.ReservationPending,
		Notes:           input.Notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflicts, err := s.countConflicts(tx, salonID, input.StaffID, input.StartTime, endTime, uuid.Nil)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrSlotNotAvailable
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "reservation.created", &reservation)
	return &reservation, nil
}

// Update changes the time, staff or service of a reservation. Terminal
// reservations cannot be rescheduled; moved slots are re-checked for
// conflicts excluding the reservation itself.
func (s *ReservationService) Update(ctx context.Context, salonID, id uuid.UUID, input UpdateReservationInput) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, id).
		First(&reservation).Error; err != nil {
		return nil, lookupErr(err, "reservation")
	}

	if reservation.Status != models.ReservationPending && reservation.Status != models.ReservationConfirmed {
		return nil, fmt.Errorf("%w: %s reservation cannot be rescheduled", ErrInvalidTransition, reservation.Status)
	}

	if input.StaffID != nil {
		var staff models.Staff
		if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, *input.StaffID).
			First(&staff).Error; err != nil {
			return nil, lookupErr(err, "staff")
		}
		reservation.StaffID = *input.StaffID
	}
	if input.ServiceID != nil {
		var service models.Service
		if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, *input.ServiceID).
			First(&service).Error; err != nil {
			return nil, lookupErr(err, "service")
		}
		reservation.ServiceID = *input.ServiceID
	}
	if input.StartTime != nil {
		reservation.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		reservation.EndTime = *input.EndTime
	}
	if input.Notes != nil {
		reservation.Notes = *input.Notes
	}

	if !utils.ValidateTimeRange(reservation.StartTime, reservation.EndTime) {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflicts, err := s.countConflicts(tx, salonID, reservation.StaffID, reservation.StartTime, reservation.EndTime, reservation.ID)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrSlotNotAvailable
		}
		return tx.Save(&reservation).Error
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "reservation.rescheduled", &reservation)
	return &reservation, nil
}

// Transition applies a lifecycle status change with the state machine
// guards. Completing a reservation bumps the customer's visit stats.
func (s *ReservationService) Transition(ctx context.Context, salonID, id uuid.UUID, to models.ReservationStatus, reason string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, id).
		First(&reservation).Error; err != nil {
		return nil, lookupErr(err, "reservation")
	}

	if to == models.ReservationCancelled && reservation.Status == models.ReservationCancelled {
		return nil, ErrAlreadyCancelled
	}
	if !reservation.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, to)
	}

	reservation.Status = to
	if to == models.ReservationCancelled {
		reservation.CancellationReason = reason
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}
		if to == models.ReservationCompleted {
			return tx.Model(&models.Customer{}).
				Where("id = ?", reservation.CustomerID).
				Updates(map[string]interface{}{
					"total_visits": gorm.Expr("total_visits + 1"),
					"last_visit":   reservation.EndTime,
				}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "reservation."+string(to), &reservation)
	return &reservation, nil
}

func (s *ReservationService) countConflicts(tx *gorm.DB, salonID, staffID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (int64, error) {
	var count int64
	query := tx.Model(&models.Reservation{}).
		Where("salon_id = ? AND staff_id = ?", salonID, staffID).
		Where("status NOT IN ?", []models.ReservationStatus{models.ReservationCancelled, models.ReservationNoShow}).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

func (s *ReservationService) publish(ctx context.Context, eventType string, r *models.Reservation) {
	if s.producer == nil {
		return
	}
	event := map[string]interface{}{
		"type":          eventType,
		"salonId":       r.SalonID.String(),
		"reservationId": r.ID.String(),
		"customerId":    r.CustomerID.String(),
		"staffId":       r.StaffID.String(),
		"status":        string(r.Status),
		"startTime":     r.StartTime,
		"occurredAt":    time.Now(),
	}
	if err := s.producer.Publish(ctx, s.topic, r.ID.String(), event); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}

// TimeSlot is one bookable window in an availability response.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Availability returns the free windows for a staff member on a given
// date: the salon working hours for that weekday minus every
// reservation that still blocks its slot.
func (s *ReservationService) Availability(ctx context.Context, salonID, staffID uuid.UUID, date time.Time) ([]TimeSlot, error) {
	var staff models.Staff
	if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, staffID).
		First(&staff).Error; err != nil {
		return nil, lookupErr(err, "staff")
	}

	var salon models.Salon
	if err := s.db.WithContext(ctx).First(&salon, "id = ?", salonID).Error; err != nil {
		return nil, lookupErr(err, "salon")
	}

	open, close, closed := workingWindow(salon.WorkingHours, date)
	if closed {
		return []TimeSlot{}, nil
	}

	dayStart := utils.BeginningOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var reservations []models.Reservation
	if err := s.db.WithContext(ctx).
		Where("salon_id = ? AND staff_id = ?", salonID, staffID).
		Where("status NOT IN ?", []models.ReservationStatus{models.ReservationCancelled, models.ReservationNoShow}).
		Where("start_time < ? AND end_time > ?", dayEnd, dayStart).
		Order("start_time").
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	return FreeSlots(open, close, reservations), nil
}

// FreeSlots subtracts the blocking reservations from the working window.
// Reservations are expected sorted by start time; overlaps with the
// window edges are clipped.
func FreeSlots(open, close time.Time, reservations []models.Reservation) []TimeSlot {
	slots := []TimeSlot{}
	cursor := open
	for _, r := range reservations {
		if !r.EndTime.After(cursor) || !r.StartTime.Before(close) {
			continue
		}
		if r.StartTime.After(cursor) {
			slots = append(slots, TimeSlot{Start: cursor, End: r.StartTime})
		}
		if r.EndTime.After(cursor) {
			cursor = r.EndTime
		}
	}
	if cursor.Before(close) {
		slots = append(slots, TimeSlot{Start: cursor, End: close})
	}
	return slots
}

var weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// workingWindow resolves the salon's opening hours for the weekday of
// the given date. Missing or malformed entries default to 09:00-20:00.
func workingWindow(hours models.JSONB, date time.Time) (open, close time.Time, closed bool) {
	day := utils.BeginningOfDay(date)
	open = day.Add(9 * time.Hour)
	close = day.Add(20 * time.Hour)

	entry, ok := hours[weekdays[int(date.Weekday())]].(map[string]interface{})
	if !ok {
		return open, close, false
	}
	if c, ok := entry["closed"].(bool); ok && c {
		return open, close, true
	}
	if t, ok := parseClock(entry["open"], day); ok {
		open = t
	}
	if t, ok := parseClock(entry["close"], day); ok {
		close = t
	}
	return open, close, false
}

func parseClock(v interface{}, day time.Time) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, false
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return time.Time{}, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return time.Time{}, false
	}
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), true
}

// lookupErr wraps record lookups so controllers can distinguish a
// missing row from a database failure.
func lookupErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return err
}

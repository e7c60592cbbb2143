// services/booking_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingService struct {
	db       *gorm.DB
	producer Publisher
	topic    string
}

func NewBookingService(db *gorm.DB, producer Publisher, topic string) *BookingService {
	return &BookingService{db: db, producer: producer, topic: topic}
}

type BookingItemInput struct {
	ReservationID *uuid.UUID `json:"reservationId"`
	ServiceID     *uuid.UUID `json:"serviceId"`
	Quantity      int        `json:"quantity"`
}

type CreateBookingInput struct {
	CustomerID    uuid.UUID          `json:"customerId" binding:"required"`
	BookingDate   *time.Time         `json:"bookingDate"`
	Items         []BookingItemInput `json:"items" binding:"required,min=1"`
	Discount      float64            `json:"discount" binding:"min=0"`
	PaymentMethod string             `json:"paymentMethod"`
	Notes         string             `json:"notes"`
}

// Create builds the billing record for a set of reservations and/or
// walk-in service lines. Prices always come from the stored service,
// never from the client, and FinalAmount is recomputed as
// Total - Discount.
func (s *BookingService) Create(ctx context.Context, salonID, userID uuid.UUID, input CreateBookingInput) (*models.Booking, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, input.CustomerID).
		First(&customer).Error; err != nil {
		return nil, lookupErr(err, "customer")
	}

	var total float64
	var items []models.BookingItem

	for _, item := range input.Items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		switch {
		case item.ReservationID != nil:
			var reservation models.Reservation
			if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, *item.ReservationID).
				First(&reservation).Error; err != nil {
				return nil, lookupErr(err, "reservation")
			}
			if !reservation.Status.Blocking() {
				return nil, fmt.Errorf("%w: %s reservation cannot be billed", ErrValidation, reservation.Status)
			}

			var service models.Service
			if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, reservation.ServiceID).
				First(&service).Error; err != nil {
				return nil, lookupErr(err, "service")
			}

			itemTotal := service.Price * float64(quantity)
			total += itemTotal
			items = append(items, models.BookingItem{
				ID:            uuid.New(),
				ReservationID: item.ReservationID,
				ServiceID:     service.ID,
				ServiceName:   service.Name,
				Quantity:      quantity,
				UnitPrice:     service.Price,
				TotalPrice:    itemTotal,
			})

		case item.ServiceID != nil:
			var service models.Service
			if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, *item.ServiceID).
				First(&service).Error; err != nil {
				return nil, lookupErr(err, "service")
			}

			itemTotal := service.Price * float64(quantity)
			total += itemTotal
			items = append(items, models.BookingItem{
				ID:          uuid.New(),
				ServiceID:   service.ID,
				ServiceName: service.Name,
				Quantity:    quantity,
				UnitPrice:   service.Price,
				TotalPrice:  itemTotal,
			})

		default:
			return nil, fmt.Errorf("%w: item needs a reservationId or a serviceId", ErrValidation)
		}
	}

	if !utils.ValidateAmounts(total, input.Discount) {
		return nil, fmt.Errorf("%w: discount must be between 0 and the total", ErrValidation)
	}

	bookingDate := time.Now()
	if input.BookingDate != nil {
		bookingDate = *input.BookingDate
	}

	booking := models.Booking{
		ID:              uuid.New(),
		SalonID:         salonID,
		CreatedByUserID: userID,
		BookingNumber:   newBookingNumber(),
		CustomerID:      input.CustomerID,
		BookingDate:     bookingDate,
		Total:           total,
		Discount:        input.Discount,
		FinalAmount:     total - input.Discount,
		Status:          models.BookingPending,
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].BookingID = booking.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}

	booking.Items = items
	s.publishBooking(ctx, "booking.created", &booking)
	return &booking, nil
}

// Pay settles a pending booking and bumps the customer spend stats.
func (s *BookingService) Pay(ctx context.Context, salonID, id uuid.UUID, paymentMethod string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, id).
		First(&booking).Error; err != nil {
		return nil, lookupErr(err, "booking")
	}

	if !booking.Status.CanTransition(models.BookingPaid) {
		return nil, fmt.Errorf("%w: %s -> paid", ErrInvalidTransition, booking.Status)
	}

	now := time.Now()
	booking.Status = models.BookingPaid
	booking.PaidAt = &now
	if paymentMethod != "" {
		booking.PaymentMethod = paymentMethod
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		return tx.Model(&models.Customer{}).
			Where("id = ?", booking.CustomerID).
			Update("total_spent", gorm.Expr("total_spent + ?", booking.FinalAmount)).Error
	})
	if err != nil {
		return nil, err
	}

	s.publishBooking(ctx, "booking.paid", &booking)
	return &booking, nil
}

// Cancel voids a booking. Paid bookings may still be cancelled, which
// records the refund reason; cancelling twice is a conflict.
func (s *BookingService) Cancel(ctx context.Context, salonID, id uuid.UUID, reason string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).Where("salon_id = ? AND id = ?", salonID, id).
		First(&booking).Error; err != nil {
		return nil, lookupErr(err, "booking")
	}

	if booking.Status == models.BookingCancelled {
		return nil, ErrAlreadyCancelled
	}
	if !booking.Status.CanTransition(models.BookingCancelled) {
		return nil, fmt.Errorf("%w: %s -> cancelled", ErrInvalidTransition, booking.Status)
	}

	wasPaid := booking.Status == models.BookingPaid
	booking.Status = models.BookingCancelled
	booking.CancellationReason = reason

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		if wasPaid {
			// Refund: roll the amount back out of the customer stats
			return tx.Model(&models.Customer{}).
				Where("id = ?", booking.CustomerID).
				Update("total_spent", gorm.Expr("total_spent - ?", booking.FinalAmount)).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishBooking(ctx, "booking.cancelled", &booking)
	return &booking, nil
}

func (s *BookingService) publishBooking(ctx context.Context, eventType string, b *models.Booking) {
	if s.producer == nil {
		return
	}
	event := map[string]interface{}{
		"type":       eventType,
		"salonId":    b.SalonID.String(),
		"bookingId":  b.ID.String(),
		"customerId": b.CustomerID.String(),
		"status":     string(b.Status),
		"amount":     b.FinalAmount,
		"occurredAt": time.Now(),
	}
	if err := s.producer.Publish(ctx, s.topic, b.ID.String(), event); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}

func newBookingNumber() string {
	return fmt.Sprintf("BK-%s-%s", time.Now().Format("20060102"), uuid.NewString()[:8])
}

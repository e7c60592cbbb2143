// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BookingController wraps the booking service.
type BookingController struct {
	svc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{svc: svc}
}

type payInput struct {
	PaymentMethod string `json:"paymentMethod"`
}

// CreateBooking creates the billing record for reservations or walk-ins
func (bc *BookingController) CreateBooking(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	userUUID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input services.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bc.svc.Create(c.Request.Context(), salonUUID, userUUID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookings retrieves all bookings for the salon
func (bc *BookingController) GetBookings(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	query := config.DB.Where("salon_id = ?", salonUUID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Preload("Items").Order("booking_date DESC").Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking retrieves a specific booking by ID
func (bc *BookingController) GetBooking(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	bookingUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Items").
		Where("salon_id = ? AND id = ?", salonUUID, bookingUUID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Pay settles a pending booking
func (bc *BookingController) Pay(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	bookingUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input payInput
	_ = c.ShouldBindJSON(&input)

	booking, err := bc.svc.Pay(c.Request.Context(), salonUUID, bookingUUID, input.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Cancel voids a booking, refunding paid ones
func (bc *BookingController) Cancel(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	bookingUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input cancelInput
	_ = c.ShouldBindJSON(&input)

	booking, err := bc.svc.Cancel(c.Request.Context(), salonUUID, bookingUUID, input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// DeleteBooking soft deletes a booking
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	bookingUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Where("salon_id = ? AND id = ?", salonUUID, bookingUUID).
		Delete(&models.Booking{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

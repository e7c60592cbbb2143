// controllers/reservation.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationController wraps the reservation service so the slot
// conflict and state machine logic stays out of the handlers.
type ReservationController struct {
	svc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{svc: svc}
}

type cancelInput struct {
	Reason string `json:"reason"`
}

// CreateReservation books a slot for a customer with a staff member
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	userUUID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input services.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reservation, err := rc.svc.Create(c.Request.Context(), salonUUID, userUUID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GetReservations retrieves the salon's reservations, optionally
// filtered by staff, customer, status or day
func (rc *ReservationController) GetReservations(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	query := config.DB.Where("salon_id = ?", salonUUID)

	if staffID := c.Query("staffId"); staffID != "" {
		staffUUID, err := uuid.Parse(staffID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
			return
		}
		query = query.Where("staff_id = ?", staffUUID)
	}
	if customerID := c.Query("customerId"); customerID != "" {
		customerUUID, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		query = query.Where("customer_id = ?", customerUUID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		dayStart := utils.BeginningOfDay(day)
		query = query.Where("start_time >= ? AND start_time < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}

	var reservations []models.Reservation
	if err := query.Preload("Customer").Preload("Staff").Preload("Service").
		Order("start_time").Find(&reservations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// GetReservation retrieves a specific reservation by ID
func (rc *ReservationController) GetReservation(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	reservationUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var reservation models.Reservation
	if err := config.DB.Preload("Customer").Preload("Staff").Preload("Service").
		Where("salon_id = ? AND id = ?", salonUUID, reservationUUID).
		First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation reschedules a reservation (time, staff or service)
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	reservationUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input services.UpdateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reservation, err := rc.svc.Update(c.Request.Context(), salonUUID, reservationUUID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// Confirm moves a pending reservation to confirmed
func (rc *ReservationController) Confirm(c *gin.Context) {
	rc.transition(c, models.ReservationConfirmed)
}

// Cancel cancels a reservation, recording the reason
func (rc *ReservationController) Cancel(c *gin.Context) {
	rc.transition(c, models.ReservationCancelled)
}

// Complete marks a confirmed reservation as completed
func (rc *ReservationController) Complete(c *gin.Context) {
	rc.transition(c, models.ReservationCompleted)
}

// NoShow marks a confirmed reservation as a no-show
func (rc *ReservationController) NoShow(c *gin.Context) {
	rc.transition(c, models.ReservationNoShow)
}

func (rc *ReservationController) transition(c *gin.Context, to models.ReservationStatus) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	reservationUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input cancelInput
	if to == models.ReservationCancelled {
		// Reason body is optional
		_ = c.ShouldBindJSON(&input)
	}

	reservation, err := rc.svc.Transition(c.Request.Context(), salonUUID, reservationUUID, to, input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// GetAvailability returns the free time slots for a staff member on a date
func (rc *ReservationController) GetAvailability(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	staffUUID, err := uuid.Parse(c.Query("staffId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid or missing staffId")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid or missing date, expected YYYY-MM-DD")
		return
	}

	slots, err := rc.svc.Availability(c.Request.Context(), salonUUID, staffUUID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"staffId": staffUUID, "date": date.Format("2006-01-02"), "slots": slots})
}

// DeleteReservation removes a reservation record entirely
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	reservationUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Where("salon_id = ? AND id = ?", salonUUID, reservationUUID).
		Delete(&models.Reservation{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete reservation")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}

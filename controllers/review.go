// controllers/review.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"salonbook-backend/config"
	"salonbook-backend/middleware"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateReviewInput defines the expected JSON structure for creating a review
type CreateReviewInput struct {
	ReservationID uuid.UUID `json:"reservationId" binding:"required"`
	Rating        int       `json:"rating" binding:"required"`
	Comment       string    `json:"comment"`
}

// UpdateReviewInput defines the expected JSON structure for updating a review
type UpdateReviewInput struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
	Reply   *string `json:"reply"`
}

// CreateReview creates a review for a completed reservation
func CreateReview(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateRating(input.Rating) {
		utils.RespondWithError(c, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	// The reservation must exist, belong to this salon and be completed
	var reservation models.Reservation
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, input.ReservationID).
		First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if reservation.Status != models.ReservationCompleted {
		utils.RespondWithError(c, http.StatusConflict, "Only completed reservations can be reviewed")
		return
	}

	// One review per reservation
	var existingReview models.Review
	if err := config.DB.Where("reservation_id = ?", input.ReservationID).
		First(&existingReview).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Reservation already has a review")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	review := models.Review{
		ID:            uuid.New(),
		SalonID:       salonUUID,
		ReservationID: reservation.ID,
		CustomerID:    reservation.CustomerID,
		StaffID:       reservation.StaffID,
		Rating:        input.Rating,
		Comment:       middleware.SanitizeString(input.Comment),
	}

	if err := config.DB.Create(&review).Error; err != nil {
		// A concurrent create can slip past the lookup above and hit
		// the unique index on reservation_id instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			utils.RespondWithError(c, http.StatusConflict, "Reservation already has a review")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create review")
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetReviews retrieves all reviews for the salon, optionally by staff
func GetReviews(c *gin.Context) {
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

	var reviews []models.Review
	if err := query.Order("created_at DESC").Find(&reviews).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// GetReview retrieves a specific review by ID
func GetReview(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	reviewUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var review models.Review
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, reviewUUID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, review)
}

// UpdateReview updates the rating, comment or salon reply
func UpdateReview(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	reviewUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var review models.Review
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, reviewUUID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Rating != nil {
		if !utils.ValidateRating(*input.Rating) {
			utils.RespondWithError(c, http.StatusBadRequest, "Rating must be between 1 and 5")
			return
		}
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = middleware.SanitizeString(*input.Comment)
	}
	if input.Reply != nil {
		review.Reply = middleware.SanitizeString(*input.Reply)
	}

	if err := config.DB.Save(&review).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update review")
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview soft deletes a review
func DeleteReview(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	reviewUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Where("salon_id = ? AND id = ?", salonUUID, reviewUUID).
		Delete(&models.Review{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

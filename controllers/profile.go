package controllers

import (
	"net/http"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateSalonProfileInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// GetProfile returns the salon settings for the current tenant
func GetProfile(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                  salon.Name,
		"address":               salon.Address,
		"phone":                 salon.Phone,
		"workingHours":          salon.WorkingHours,
		"reservationReminders":  salon.ReservationReminders,
		"whatsAppNotifications": salon.WhatsAppNotifications,
		"smsNotifications":      salon.SMSNotifications,
	})
}

// UpdateSalonProfile updates the salon name, address and phone
func UpdateSalonProfile(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input UpdateSalonProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		return
	}

	if input.Name != nil {
		salon.Name = *input.Name
	}
	if input.Address != nil {
		salon.Address = *input.Address
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		salon.Phone = *input.Phone
	}

	if err := config.DB.Save(&salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UpdateWorkingHours replaces the salon's weekly opening hours
func UpdateWorkingHours(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input struct {
		WorkingHours models.JSONB `json:"workingHours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.Salon{}).Where("id = ?", salonUUID).
		Update("working_hours", input.WorkingHours).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update working hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Working hours updated"})
}

// UpdateNotificationSettings toggles the reminder channels
func UpdateNotificationSettings(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input struct {
		ReservationReminders  bool `json:"reservationReminders"`
		WhatsAppNotifications bool `json:"whatsAppNotifications"`
		SMSNotifications      bool `json:"smsNotifications"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.Salon{}).Where("id = ?", salonUUID).
		Updates(map[string]interface{}{
			"reservation_reminders":   input.ReservationReminders,
			"whats_app_notifications": input.WhatsAppNotifications,
			"sms_notifications":       input.SMSNotifications,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}

type UpdateReminderSettingInput struct {
	Type     string  `json:"type" binding:"required,oneof=reservation birthday"`
	IsActive *bool   `json:"isActive"`
	Message  *string `json:"message"`
}

// UpdateReminderSetting edits the message template for one reminder type
func UpdateReminderSetting(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input UpdateReminderSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var template models.ReminderTemplate
	if err := config.DB.Where("salon_id = ? AND type = ?", salonUUID, input.Type).First(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Reminder template not found")
		return
	}

	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}
	if input.Message != nil {
		template.Message = *input.Message
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reminder setting")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder setting updated"})
}

// GetReminderSettings lists the reminder templates as a settings map
func GetReminderSettings(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var templates []models.ReminderTemplate
	if err := config.DB.Where("salon_id = ?", salonUUID).Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch reminder settings")
		return
	}

	settings := gin.H{}
	for _, t := range templates {
		settings[t.Type+"_reminder"] = t.IsActive
		settings[t.Type+"_message"] = t.Message
	}

	c.JSON(http.StatusOK, settings)
}

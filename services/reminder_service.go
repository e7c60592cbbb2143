// services/reminder_service.go
package services

import (
	"log"
	"os"
	"strings"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler wires the daily reminder run and the hourly sweep that
// marks stale confirmed reservations as no-shows.
func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	if _, err := c.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		log.Printf("Failed to schedule daily reminders: %v", err)
	}

	if _, err := c.AddFunc("@hourly", s.SweepNoShows); err != nil {
		log.Printf("Failed to schedule no-show sweep: %v", err)
	}

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendDailyReminders sends the appointment reminder for every confirmed
// reservation starting tomorrow, one salon at a time.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	var salons []models.Salon
	if err := s.db.Find(&salons, "reservation_reminders = ?", true).Error; err != nil {
		log.Printf("Failed to fetch salons: %v", err)
		return
	}

	for _, salon := range salons {
		s.ProcessSalonReminders(salon.ID)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) ProcessSalonReminders(salonID uuid.UUID) {
	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := utils.BeginningOfDay(tomorrow)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var reservations []models.Reservation
	if err := s.db.Preload("Customer").Preload("Service").
		Where("salon_id = ? AND status = ?", salonID, models.ReservationConfirmed).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Find(&reservations).Error; err != nil {
		log.Printf("Salon %s: Failed to get upcoming reservations: %v", salonID, err)
		return
	}

	if len(reservations) == 0 {
		return
	}

	// Active reservation template for this salon
	var template models.ReminderTemplate
	if err := s.db.Where("salon_id = ? AND type = ? AND is_active = true", salonID, "reservation").
		First(&template).Error; err != nil {
		log.Printf("Salon %s: No active reservation template: %v", salonID, err)
		return
	}

	for _, reservation := range reservations {
		message := strings.ReplaceAll(template.Message, "[CustomerName]", reservation.Customer.Name)
		message = strings.ReplaceAll(message, "[ServiceName]", reservation.Service.Name)
		message = strings.ReplaceAll(message, "[Time]", reservation.StartTime.Format("15:04"))

		s.send(salonID, reservation, template, message)
	}
}

func (s *ReminderService) send(salonID uuid.UUID, reservation models.Reservation, template models.ReminderTemplate, message string) {
	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(reservation.Customer.Phone, "+") {
		to = "whatsapp:" + reservation.Customer.Phone
		channel = "whatsapp"
	} else {
		to = reservation.Customer.Phone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", reservation.Customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", reservation.Customer.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", reservation.Customer.Phone)
	}

	reservationID := reservation.ID
	reminderLog := models.ReminderLog{
		SalonID:       salonID,
		CustomerID:    reservation.CustomerID,
		ReservationID: &reservationID,
		TemplateID:    template.ID,
		Type:          "reservation",
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for customer %s: %v", reservation.CustomerID, err)
	}
}

// SweepNoShows marks confirmed reservations whose slot ended more than
// two hours ago as no_show, freeing the slot for conflict checks.
func (s *ReminderService) SweepNoShows() {
	cutoff := time.Now().Add(-2 * time.Hour)

	result := s.db.Model(&models.Reservation{}).
		Where("status = ? AND end_time < ?", models.ReservationConfirmed, cutoff).
		Update("status", models.ReservationNoShow)

	if result.Error != nil {
		log.Printf("No-show sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("No-show sweep marked %d reservations", result.RowsAffected)
	}
}

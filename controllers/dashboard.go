package controllers

import (
	"net/http"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type TodayReservation struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Staff    string `json:"staff"`
	Service  string `json:"service"`
	Start    string `json:"start"`
	Status   string `json:"status"`
}

// GetDashboardOverview returns today's schedule and the headline numbers
func GetDashboardOverview(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	now := time.Now()
	dayStart := utils.BeginningOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// Total customers
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Where("salon_id = ?", salonUUID).Count(&totalCustomers)

	// This month's revenue from paid bookings
	var monthlyRevenue float64
	config.DB.Model(&models.Booking{}).
		Where("salon_id = ? AND status = ? AND booking_date >= ?", salonUUID, models.BookingPaid, firstOfMonth).
		Select("COALESCE(SUM(final_amount), 0)").Scan(&monthlyRevenue)

	// Today's reservations
	var reservations []models.Reservation
	config.DB.Preload("Customer").Preload("Staff").Preload("Service").
		Where("salon_id = ? AND start_time >= ? AND start_time < ?", salonUUID, dayStart, dayEnd).
		Order("start_time").
		Find(&reservations)

	todays := make([]TodayReservation, 0, len(reservations))
	var pendingCount, confirmedCount int64
	for _, r := range reservations {
		todays = append(todays, TodayReservation{
			ID:       r.ID.String(),
			Customer: r.Customer.Name,
			Staff:    r.Staff.Name,
			Service:  r.Service.Name,
			Start:    r.StartTime.Format("15:04"),
			Status:   string(r.Status),
		})
		switch r.Status {
		case models.ReservationPending:
			pendingCount++
		case models.ReservationConfirmed:
			confirmedCount++
		}
	}

	// Unpaid bookings awaiting settlement
	var unpaidBookings int64
	config.DB.Model(&models.Booking{}).
		Where("salon_id = ? AND status = ?", salonUUID, models.BookingPending).
		Count(&unpaidBookings)

	// Average rating over the last 30 days
	var avgRating float64
	config.DB.Model(&models.Review{}).
		Where("salon_id = ? AND created_at >= ?", salonUUID, now.AddDate(0, 0, -30)).
		Select("COALESCE(AVG(rating), 0)").Scan(&avgRating)

	response := gin.H{
		"totalCustomers": totalCustomers,
		"monthlyRevenue": monthlyRevenue,
		"todayReservations": gin.H{
			"count":     len(todays),
			"pending":   pendingCount,
			"confirmed": confirmedCount,
			"list":      todays,
		},
		"unpaidBookings": unpaidBookings,
		"averageRating":  avgRating,
	}

	c.JSON(http.StatusOK, response)
}

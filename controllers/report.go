// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64           `json:"currentMonthRevenue"`
	MonthGrowth           float64           `json:"monthGrowth"`
	CurrentQuarterRevenue float64           `json:"currentQuarterRevenue"`
	QuarterGrowth         float64           `json:"quarterGrowth"`
	CurrentYearRevenue    float64           `json:"currentYearRevenue"`
	YearGrowth            float64           `json:"yearGrowth"`
	TopServices           []ServiceSummary  `json:"topServices"`
	TopStaff              []StaffSummary    `json:"topStaff"`
	TopCustomers          []CustomerSummary `json:"topCustomers"`
	QuickStats            QuickStatistics   `json:"quickStats"`
}

type ServiceSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type StaffSummary struct {
	Name         string  `json:"name"`
	Reservations int     `json:"reservations"`
	AvgRating    float64 `json:"avgRating"`
}

type CustomerSummary struct {
	Name   string  `json:"name"`
	Visits int     `json:"visits"`
	Spent  float64 `json:"spent"`
}

type QuickStatistics struct {
	TotalCustomers    int     `json:"totalCustomers"`
	TotalBookings     int     `json:"totalBookings"`
	TotalReservations int     `json:"totalReservations"`
	NoShowRate        float64 `json:"noShowRate"`
	AvgBookingValue   float64 `json:"avgBookingValue"`
}

// GetReportAnalytics returns the complete analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	// Get current time
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	// Calculate date ranges
	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	// Get revenue reports
	currentMonthRevenue, err := rc.getRevenue(salonUUID, firstOfMonth, lastOfMonth)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	lastMonthRevenue, err := rc.getRevenue(salonUUID,
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	currentQuarterRevenue, err := rc.getRevenue(salonUUID,
		rc.getQuarterStart(now),
		rc.getQuarterEnd(now))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	lastQuarterRevenue, err := rc.getRevenue(salonUUID,
		rc.getQuarterStart(now).AddDate(0, -3, 0),
		rc.getQuarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	currentYearRevenue, err := rc.getRevenue(salonUUID,
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	lastYearRevenue, err := rc.getRevenue(salonUUID,
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Calculate growth percentages
	monthGrowth := rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue)
	quarterGrowth := rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue)
	yearGrowth := rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue)

	topServices, err := rc.getTopServices(salonUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	topStaff, err := rc.getTopStaff(salonUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	topCustomers, err := rc.getTopCustomers(salonUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	quickStats, err := rc.getQuickStatistics(salonUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           monthGrowth,
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         quarterGrowth,
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            yearGrowth,
		TopServices:           topServices,
		TopStaff:              topStaff,
		TopCustomers:          topCustomers,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(salonID uuid.UUID, start, end time.Time) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Booking{}).
		Where("salon_id = ? AND status = ? AND booking_date BETWEEN ? AND ?", salonID, models.BookingPaid, start, end).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopServices(salonID uuid.UUID, start, end time.Time, limit int) ([]ServiceSummary, error) {
	var services []ServiceSummary

	err := config.DB.Table("booking_items").
		Select("services.name, SUM(booking_items.quantity) as count, SUM(booking_items.total_price) as revenue").
		Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
		Joins("JOIN services ON services.id = booking_items.service_id").
		Where("bookings.salon_id = ? AND bookings.status = ? AND bookings.booking_date BETWEEN ? AND ? AND bookings.deleted_at IS NULL",
			salonID, models.BookingPaid, start, end).
		Group("services.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&services).Error

	return services, err
}

func (rc *ReportController) getTopStaff(salonID uuid.UUID, start, end time.Time, limit int) ([]StaffSummary, error) {
	var staff []StaffSummary

	err := config.DB.Table("reservations").
		Select("staffs.name, COUNT(reservations.id) as reservations, COALESCE(AVG(reviews.rating), 0) as avg_rating").
		Joins("JOIN staffs ON staffs.id = reservations.staff_id").
		Joins("LEFT JOIN reviews ON reviews.reservation_id = reservations.id AND reviews.deleted_at IS NULL").
		Where("reservations.salon_id = ? AND reservations.status = ? AND reservations.start_time BETWEEN ? AND ? AND reservations.deleted_at IS NULL",
			salonID, models.ReservationCompleted, start, end).
		Group("staffs.name").
		Order("reservations DESC").
		Limit(limit).
		Scan(&staff).Error

	return staff, err
}

func (rc *ReportController) getTopCustomers(salonID uuid.UUID, start, end time.Time, limit int) ([]CustomerSummary, error) {
	var customers []CustomerSummary

	err := config.DB.Table("bookings").
		Select("customers.name, COUNT(bookings.id) as visits, SUM(bookings.final_amount) as spent").
		Joins("JOIN customers ON customers.id = bookings.customer_id").
		Where("bookings.salon_id = ? AND bookings.status = ? AND bookings.booking_date BETWEEN ? AND ? AND bookings.deleted_at IS NULL AND customers.deleted_at IS NULL",
			salonID, models.BookingPaid, start, end).
		Group("customers.name").
		Order("spent DESC").
		Limit(limit).
		Scan(&customers).Error

	return customers, err
}

func (rc *ReportController) getQuickStatistics(salonID uuid.UUID) (QuickStatistics, error) {
	var stats QuickStatistics

	var totalCustomers int64
	if err := config.DB.Model(&models.Customer{}).
		Where("salon_id = ?", salonID).
		Count(&totalCustomers).Error; err != nil {
		return stats, err
	}
	stats.TotalCustomers = int(totalCustomers)

	var totalBookings int64
	if err := config.DB.Model(&models.Booking{}).
		Where("salon_id = ?", salonID).
		Count(&totalBookings).Error; err != nil {
		return stats, err
	}
	stats.TotalBookings = int(totalBookings)

	var totalReservations int64
	if err := config.DB.Model(&models.Reservation{}).
		Where("salon_id = ?", salonID).
		Count(&totalReservations).Error; err != nil {
		return stats, err
	}
	stats.TotalReservations = int(totalReservations)

	var noShows int64
	if err := config.DB.Model(&models.Reservation{}).
		Where("salon_id = ? AND status = ?", salonID, models.ReservationNoShow).
		Count(&noShows).Error; err != nil {
		return stats, err
	}
	if stats.TotalReservations > 0 {
		stats.NoShowRate = float64(noShows) / float64(stats.TotalReservations) * 100
	}

	var totalRevenue float64
	if err := config.DB.Model(&models.Booking{}).
		Where("salon_id = ? AND status = ?", salonID, models.BookingPaid).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return stats, err
	}

	if stats.TotalBookings > 0 {
		stats.AvgBookingValue = totalRevenue / float64(stats.TotalBookings)
	}

	return stats, nil
}

package routes

import (
	"os"
	"strings"

	"salonbook-backend/config"
	"salonbook-backend/controllers"
	"salonbook-backend/kafka"
	"salonbook-backend/middleware"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	_ "salonbook-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.CSRFHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(config.PerformanceLogger())
	r.Use(middleware.SanitizeQuery())
	r.Use(middleware.RateLimit(middleware.DefaultRateLimit(), config.Redis))
	r.Use(middleware.CSRF())

	// Wire services behind the stateful controllers
	var producer services.Publisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer = kafka.NewProducer(strings.Split(brokers, ","))
	}
	topic := os.Getenv("KAFKA_EVENTS_TOPIC")
	if topic == "" {
		topic = "salon.events"
	}

	var holds services.SlotHolder
	if config.Redis != nil {
		holds = services.NewRedisSlotHolder(config.Redis)
	}

	reservationController := controllers.NewReservationController(
		services.NewReservationService(config.DB, holds, producer, topic))
	bookingController := controllers.NewBookingController(
		services.NewBookingService(config.DB, producer, topic))

	r.GET("/health", controllers.HealthCheck)
	r.GET("/swagger/*any", gin.WrapH(httpSwagger.WrapHandler))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api/v1")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Staff routes
		staff := api.Group("/staff")
		{
			staff.POST("", controllers.CreateStaff)
			staff.GET("", controllers.GetStaffMembers)
			staff.GET("/:id", controllers.GetStaffMember)
			staff.PUT("/:id", controllers.UpdateStaff)
			staff.DELETE("/:id", controllers.DeleteStaff)
		}

		// Service routes
		servicesGroup := api.Group("/services")
		{
			servicesGroup.POST("", controllers.CreateService)
			servicesGroup.GET("", controllers.GetServices)
			servicesGroup.GET("/:id", controllers.GetService)
			servicesGroup.PUT("/:id", controllers.UpdateService)
			servicesGroup.DELETE("/:id", controllers.DeleteService)
		}

		// Reservation routes
		reservations := api.Group("/reservations")
		{
			reservations.POST("", reservationController.CreateReservation)
			reservations.GET("", reservationController.GetReservations)
			reservations.GET("/availability", reservationController.GetAvailability)
			reservations.GET("/:id", reservationController.GetReservation)
			reservations.PUT("/:id", reservationController.UpdateReservation)
			reservations.DELETE("/:id", reservationController.DeleteReservation)
			reservations.POST("/:id/confirm", reservationController.Confirm)
			reservations.POST("/:id/cancel", reservationController.Cancel)
			reservations.POST("/:id/complete", reservationController.Complete)
			reservations.POST("/:id/no-show", reservationController.NoShow)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.POST("", bookingController.CreateBooking)
			bookings.GET("", bookingController.GetBookings)
			bookings.GET("/:id", bookingController.GetBooking)
			bookings.DELETE("/:id", bookingController.DeleteBooking)
			bookings.POST("/:id/pay", bookingController.Pay)
			bookings.POST("/:id/cancel", bookingController.Cancel)
		}

		// Review routes
		reviews := api.Group("/reviews")
		{
			reviews.POST("", controllers.CreateReview)
			reviews.GET("", controllers.GetReviews)
			reviews.GET("/:id", controllers.GetReview)
			reviews.PUT("/:id", controllers.UpdateReview)
			reviews.DELETE("/:id", controllers.DeleteReview)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("/update-salon", controllers.UpdateSalonProfile)
			profile.PUT("/update-hours", controllers.UpdateWorkingHours)
			profile.PUT("/update-notifications", controllers.UpdateNotificationSettings)
			profile.GET("/reminders", controllers.GetReminderSettings)
			profile.PUT("/reminders", controllers.UpdateReminderSetting)
		}

		// Employee routes, owner/manager only
		employees := api.Group("/employees", utils.RequireRole("owner", "manager"))
		{
			employees.GET("", controllers.GetEmployees)
			employees.POST("", controllers.AddEmployee)
			employees.PUT("/:id", controllers.UpdateEmployee)
			employees.DELETE("/:id", controllers.DeleteEmployee)
		}
	}

	return r
}

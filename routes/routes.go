package routes

import (
	"VitaClinic/cache"
	"VitaClinic/config"
	"VitaClinic/controllers"
	"VitaClinic/handlers"
	"VitaClinic/middlewares"
	"VitaClinic/repositories"
	"VitaClinic/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.example.com", "https://example-dev.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	doctorRepo := repositories.NewDoctorRepository(cache)
	patientRepo := repositories.NewPatientRepository(cache)
	questionnaireRepo := repositories.NewQuestionnaireRepository(cache)
	slotRepo := repositories.NewSlotRepository(cache)
	bookingRepo := repositories.NewBookingRepository(cache)
	triageRepo := repositories.NewTriageRepository(cache)
	userRepo := repositories.NewUserRepository(db, cache)

	doctorService := services.NewDoctorService(doctorRepo)
	patientService := services.NewPatientService(patientRepo, questionnaireRepo, bookingRepo)
	slotService := services.NewSlotService(slotRepo, doctorRepo, patientService, config)
	bookingService := services.NewBookingService(bookingRepo, slotRepo, triageRepo, doctorRepo, patientService, config)
	userService := services.NewUserService(userRepo)

	patientHandler := handlers.NewPatientHandler(patientService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	slotHandler := handlers.NewSlotHandler(slotService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	authHandler := handlers.NewAuthHandler(userService)

	// Register routes
	controllers.SetupSchedulingRoutes(router, patientHandler, doctorHandler, slotHandler, bookingHandler)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}

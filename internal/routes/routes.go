package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"practice-scheduler-server/internal/config"
	"practice-scheduler-server/internal/handlers"
	"practice-scheduler-server/internal/middleware"
	"practice-scheduler-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	clientHandler := handlers.NewClientHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Client record routes (the practitioner's own roster). Only
		// practitioner accounts own a roster and a calendar; admin accounts
		// manage nothing here.
		clientRoutes := private.Group("/clients")
		clientRoutes.Use(middleware.RoleAuthMiddleware(models.RolePractitioner))
		{
			clientRoutes.POST("", clientHandler.CreateClient)
			clientRoutes.GET("", clientHandler.GetClients)
			clientRoutes.GET("/:id", clientHandler.GetClientByID)
			clientRoutes.PUT("/:id", clientHandler.UpdateClient)
			clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		appointmentRoutes.Use(middleware.RoleAuthMiddleware(models.RolePractitioner))
		{
			// Dry-run a draft: occurrences + conflicts, nothing written
			appointmentRoutes.POST("/preview", appointmentHandler.PreviewBooking)

			// Commit a draft; responds 409 with the confirmation payload
			// when unconfirmed conflicts exist
			appointmentRoutes.POST("", appointmentHandler.CreateBooking)

			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)

			// Cancel one occurrence, or ?scope=series for the rest of the series
			appointmentRoutes.DELETE("/:id", appointmentHandler.CancelAppointment)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}

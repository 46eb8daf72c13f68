package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campus-watch/api-go/controllers"
	"github.com/campus-watch/api-go/middleware"
	"github.com/campus-watch/api-go/services"
	"github.com/campus-watch/api-go/utils/storage"
)

// SetupRoutes wires every route exactly once.
func SetupRoutes(r *gin.Engine, db *gorm.DB, outbox *services.Outbox, images *storage.ImageStore) {
	reportService := services.NewReportService(db, outbox)
	feedbackService := services.NewFeedbackService(db)
	aggregator := services.NewAggregator(db)

	authController := controllers.NewAuthController(db, outbox)
	reportController := controllers.NewReportController(reportService, feedbackService, images)
	dashboardController := controllers.NewDashboardController(reportService, aggregator, outbox)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Campus incident reporting service"})
	})
	r.GET("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Log in with your matric number and password."})
	})

	// Public routes
	r.POST("/register", authController.Register)
	r.POST("/login", authController.Login)
	r.GET("/forgot-password", authController.ShowForgotPassword)
	r.POST("/forgot-password", authController.ForgotPassword)
	r.GET("/reset-password/:token", authController.ShowResetPassword)
	r.POST("/reset-password/:token", authController.ResetPassword)

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/logout", authController.Logout)
		protected.GET("/emergency-contacts", dashboardController.EmergencyContacts)
		protected.POST("/send-emergency-message", dashboardController.SendEmergencyMessage)

		SetupReportRoutes(protected, reportController)
		SetupDashboardRoutes(protected, dashboardController)
	}
}

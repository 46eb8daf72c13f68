package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campus-watch/api-go/controllers"
	"github.com/campus-watch/api-go/middleware"
	"github.com/campus-watch/api-go/models"
)

// SetupReportRoutes registers the student-facing report routes.
func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController) {
	student := protected.Group("/")
	student.Use(middleware.RequireRole(models.RoleStudent))
	{
		student.GET("/dashboard", reportController.Dashboard)
		student.POST("/report", reportController.CreateReport)
		student.POST("/submit-feedback/:incidentId", reportController.SubmitFeedback)
		student.POST("/delete-incident/:id", reportController.DeleteIncident)
	}
}

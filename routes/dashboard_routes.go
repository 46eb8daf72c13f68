package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campus-watch/api-go/controllers"
	"github.com/campus-watch/api-go/middleware"
	"github.com/campus-watch/api-go/models"
)

// SetupDashboardRoutes registers the staff triage and analytics routes.
func SetupDashboardRoutes(protected *gin.RouterGroup, dashboardController *controllers.DashboardController) {
	admin := protected.Group("/")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/admin-dashboard", dashboardController.AdminDashboard)
	}

	security := protected.Group("/")
	security.Use(middleware.RequireRole(models.RoleSecurity))
	{
		security.GET("/security-dashboard", dashboardController.SecurityDashboard)
		security.POST("/security/report/:id/status", dashboardController.UpdateReportStatus)
	}
}

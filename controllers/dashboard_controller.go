package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-watch/api-go/models"
	"github.com/campus-watch/api-go/services"
	"github.com/campus-watch/api-go/utils"
)

type DashboardController struct {
	Reports    *services.ReportService
	Aggregator *services.Aggregator
	Outbox     *services.Outbox
}

func NewDashboardController(reports *services.ReportService, aggregator *services.Aggregator, outbox *services.Outbox) *DashboardController {
	return &DashboardController{Reports: reports, Aggregator: aggregator, Outbox: outbox}
}

// AdminDashboard returns the aggregated statistics snapshot together with
// every report on file.
func (dc *DashboardController) AdminDashboard(c *gin.Context) {
	snapshot, err := dc.Aggregator.ComputeDashboard(time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	reports, err := dc.Reports.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"stats":     snapshot,
		"reports":   reportsWithOwner(reports),
	})
}

// SecurityDashboard lists every report with its owner's matric number.
func (dc *DashboardController) SecurityDashboard(c *gin.Context) {
	reports, err := dc.Reports.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reports": reportsWithOwner(reports)})
}

// UpdateReportStatus applies a lifecycle transition; the lifecycle
// controller notifies the owner after the change commits.
func (dc *DashboardController) UpdateReportStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id", "success": false})
		return
	}

	var input struct {
		Status string `form:"status" json:"status" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	report, err := dc.Reports.UpdateStatus(actorFrom(c), id, models.Status(input.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"redirect": "/security-dashboard",
		"report":   report,
	})
}

// EmergencyContact is one entry of the static contact directory.
type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

var emergencyContacts = []EmergencyContact{
	{Name: "Campus Security", Phone: "555-123-4567", Email: "security@campus.com"},
	{Name: "Fire Department", Phone: "555-987-6543", Email: "fire@city.com"},
	{Name: "Medical Emergency", Phone: "555-222-3333", Email: "medical@hospital.com"},
	{Name: "Police Department", Phone: "555-911-0000", Email: "police@city.com"},
}

func (dc *DashboardController) EmergencyContacts(c *gin.Context) {
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: emergencyContacts})
}

// SendEmergencyMessage relays a message to one of the emergency contacts,
// best effort.
func (dc *DashboardController) SendEmergencyMessage(c *gin.Context) {
	var input struct {
		Email   string `form:"email" json:"email" binding:"required,email"`
		Message string `form:"message" json:"message" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	claims := utils.GetUser(c)
	dc.Outbox.Enqueue(services.Message{
		To:      []string{input.Email},
		Subject: "Emergency message from campus security portal",
		Body:    input.Message + "\n\nSent by: " + claims.FirstName,
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Your message has been sent to " + input.Email})
}

// reportsWithOwner flattens each report to the shape the staff dashboards
// render, owner matric number included, soft-deleted rows retained.
func reportsWithOwner(reports []models.Report) []gin.H {
	out := make([]gin.H, 0, len(reports))
	for _, r := range reports {
		out = append(out, gin.H{
			"id":           r.ID,
			"matricNumber": r.User.MatricNumber,
			"description":  r.Description,
			"category":     r.Category,
			"status":       r.Status,
			"imageUrl":     r.ImageURL,
			"createdAt":    r.CreatedAt,
			"deleted":      r.Deleted,
			"deletedAt":    r.DeletedAt,
		})
	}
	return out
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus-watch/api-go/models"
	"github.com/campus-watch/api-go/services"
	"github.com/campus-watch/api-go/utils"
	"github.com/campus-watch/api-go/utils/storage"
)

type ReportController struct {
	Reports  *services.ReportService
	Feedback *services.FeedbackService
	Images   *storage.ImageStore
}

func NewReportController(reports *services.ReportService, feedback *services.FeedbackService, images *storage.ImageStore) *ReportController {
	return &ReportController{Reports: reports, Feedback: feedback, Images: images}
}

func actorFrom(c *gin.Context) services.Actor {
	claims := utils.GetUser(c)
	return services.Actor{ID: claims.UserID, Role: claims.Role}
}

// CreateReport accepts a multipart form with a description and an optional
// evidence photo. The photo is pushed to object storage first; the report
// row only ever stores its opaque URL.
func (rc *ReportController) CreateReport(c *gin.Context) {
	description := c.PostForm("description")

	imageURL := ""
	file, err := c.FormFile("image")
	if err == nil && file != nil {
		contentType := file.Header.Get("Content-Type")
		if !storage.IsValidImageType(contentType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type", "success": false})
			return
		}
		if file.Size > storage.MaxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds size limit", "success": false})
			return
		}
		if rc.Images == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image storage unavailable", "success": false})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error submitting report", "success": false})
			return
		}
		defer src.Close()

		actor := actorFrom(c)
		imageURL, err = rc.Images.UploadReportImage(c.Request.Context(), actor.ID, file.Filename, contentType, src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error submitting report", "success": false})
			return
		}
	}

	report, err := rc.Reports.Create(actorFrom(c), description, imageURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"redirect": "/dashboard",
		"report":   report,
	})
}

// Dashboard lists the student's own reports, hiding soft-deleted ones.
func (rc *ReportController) Dashboard(c *gin.Context) {
	reports, err := rc.Reports.ListOwn(actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: reports})
}

// DeleteIncident soft-deletes a report the student owns.
func (rc *ReportController) DeleteIncident(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident id", "success": false})
		return
	}

	if err := rc.Reports.SoftDelete(actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": "/dashboard"})
}

// SubmitFeedback rates an addressed incident.
func (rc *ReportController) SubmitFeedback(c *gin.Context) {
	id, err := parseID(c.Param("incidentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident id", "success": false})
		return
	}

	var input struct {
		Feedback string `form:"feedback" json:"feedback" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	feedback, err := rc.Feedback.Submit(actorFrom(c), id, models.FeedbackValue(input.Feedback))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"redirect": "/dashboard",
		"feedback": feedback,
	})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}

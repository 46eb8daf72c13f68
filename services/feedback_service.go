package services

import (
	"errors"
	"strings"

	"github.com/campus-watch/api-go/models"
	"gorm.io/gorm"
)

// FeedbackService applies the post-resolution feedback rules.
type FeedbackService struct {
	DB *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{DB: db}
}

// Submit records the actor's rating for an addressed report. Preconditions,
// in order: the report exists, its status is Addressed, and the actor has
// not rated it before. The duplicate check is also enforced by the unique
// index on feedbacks(report_id, user_id), so a concurrent double submission
// still yields exactly one row.
func (fs *FeedbackService) Submit(actor Actor, reportID uint, value models.FeedbackValue) (*models.Feedback, error) {
	if !value.Valid() {
		return nil, validationError("unknown feedback value %q", value)
	}

	var report models.Report
	if err := fs.DB.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("report %d", reportID)
		}
		return nil, err
	}

	if report.Status != models.StatusAddressed {
		return nil, conflictError("feedback is only accepted for addressed incidents")
	}

	var existing models.Feedback
	err := fs.DB.Where("report_id = ? AND user_id = ?", reportID, actor.ID).First(&existing).Error
	if err == nil {
		return nil, conflictError("feedback already submitted for this incident")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	feedback := models.Feedback{
		ReportID: reportID,
		UserID:   actor.ID,
		Value:    value,
	}
	if err := fs.DB.Create(&feedback).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflictError("feedback already submitted for this incident")
		}
		return nil, err
	}

	return &feedback, nil
}

// isUniqueViolation catches the constraint error raised when the unique
// index wins a race the application-level check missed.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

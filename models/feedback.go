package models

import (
	"time"
)

// FeedbackValue is the closed set of sentiment labels a student may pick
// after an incident has been addressed. FeedbackValues holds them in the
// canonical order used by dashboard summaries.
type FeedbackValue string

const (
	FeedbackAmazing    FeedbackValue = "Amazing"
	FeedbackGood       FeedbackValue = "Good"
	FeedbackBad        FeedbackValue = "Bad"
	FeedbackNoResponse FeedbackValue = "No Response"
	FeedbackReallyBad  FeedbackValue = "Really Bad"
)

var FeedbackValues = []FeedbackValue{
	FeedbackAmazing,
	FeedbackGood,
	FeedbackBad,
	FeedbackNoResponse,
	FeedbackReallyBad,
}

func (v FeedbackValue) Valid() bool {
	for _, known := range FeedbackValues {
		if v == known {
			return true
		}
	}
	return false
}

// Feedback rates the resolution of one report by its owner. The composite
// unique index closes the duplicate-submission race at the database, so two
// concurrent submissions for the same (report, user) cannot both commit.
// Rows are immutable once created.
type Feedback struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	ReportID  uint          `gorm:"not null;uniqueIndex:idx_feedback_report_user" json:"report_id"`
	UserID    uint          `gorm:"not null;uniqueIndex:idx_feedback_report_user" json:"user_id"`
	Value     FeedbackValue `gorm:"not null" json:"value"`

	Report Report `gorm:"foreignKey:ReportID" json:"report,omitempty"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

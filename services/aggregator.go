package services

import (
	"time"

	"github.com/campus-watch/api-go/models"
	"gorm.io/gorm"
)

const reportsPerDayWindow = 7

// UserReportCount is one row of the per-user breakdown, keyed by matric
// number.
type UserReportCount struct {
	MatricNumber string `json:"matric_number"`
	Count        int64  `json:"count"`
}

// DayCount is one entry of the recent-activity time series. Date is a
// calendar day in YYYY-MM-DD form.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// FeedbackCount is one entry of the feedback tally.
type FeedbackCount struct {
	Value models.FeedbackValue `json:"value"`
	Count int64                `json:"count"`
}

// DashboardSnapshot is the view-ready shape the admin dashboard renders.
// ReportsPerDay always has exactly 7 entries and FeedbackSummary one entry
// per defined label; the aggregator, not the view layer, guarantees the
// fixed shapes chart rendering assumes.
type DashboardSnapshot struct {
	TotalReports     int64             `json:"total_reports"`
	PendingReports   int64             `json:"pending_reports"`
	AddressedReports int64             `json:"addressed_reports"`
	ReportsByUser    []UserReportCount `json:"reports_by_user"`
	ReportsPerDay    []DayCount        `json:"reports_per_day"`
	FeedbackSummary  []FeedbackCount   `json:"feedback_summary"`
}

// Aggregator computes dashboard statistics from the report and feedback
// stores. All queries are read-only; soft-deleted reports are counted.
type Aggregator struct {
	DB *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{DB: db}
}

// ComputeDashboard builds an eventually-consistent snapshot of current store
// state as of the given time. Safe to call concurrently.
func (a *Aggregator) ComputeDashboard(asOf time.Time) (*DashboardSnapshot, error) {
	snapshot := &DashboardSnapshot{}

	if err := a.DB.Model(&models.Report{}).Count(&snapshot.TotalReports).Error; err != nil {
		return nil, err
	}
	if err := a.DB.Model(&models.Report{}).Where("status = ?", models.StatusPending).Count(&snapshot.PendingReports).Error; err != nil {
		return nil, err
	}
	if err := a.DB.Model(&models.Report{}).Where("status = ?", models.StatusAddressed).Count(&snapshot.AddressedReports).Error; err != nil {
		return nil, err
	}

	byUser, err := a.reportsByUser()
	if err != nil {
		return nil, err
	}
	snapshot.ReportsByUser = byUser

	perDay, err := a.reportsPerDay(asOf)
	if err != nil {
		return nil, err
	}
	snapshot.ReportsPerDay = perDay

	feedback, err := a.feedbackSummary()
	if err != nil {
		return nil, err
	}
	snapshot.FeedbackSummary = feedback

	return snapshot, nil
}

// reportsByUser counts reports per submitting matric number, ascending by
// matric number. Users without reports do not appear.
func (a *Aggregator) reportsByUser() ([]UserReportCount, error) {
	rows := []UserReportCount{}
	err := a.DB.Model(&models.Report{}).
		Select("users.matric_number AS matric_number, COUNT(reports.id) AS count").
		Joins("JOIN users ON users.id = reports.user_id").
		Group("users.matric_number").
		Order("users.matric_number ASC").
		Scan(&rows).Error
	return rows, err
}

// reportsPerDay returns exactly one entry per calendar day for the 7 days
// ending at asOf inclusive, in ascending date order. Days with no reports
// appear with a zero count; bucketing happens here rather than in SQL so
// empty days cannot go missing.
func (a *Aggregator) reportsPerDay(asOf time.Time) ([]DayCount, error) {
	dayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	windowStart := dayStart.AddDate(0, 0, -(reportsPerDayWindow - 1))
	windowEnd := dayStart.AddDate(0, 0, 1)

	var createdAts []time.Time
	err := a.DB.Model(&models.Report{}).
		Where("created_at >= ? AND created_at < ?", windowStart, windowEnd).
		Pluck("created_at", &createdAts).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, reportsPerDayWindow)
	for _, createdAt := range createdAts {
		counts[createdAt.In(asOf.Location()).Format("2006-01-02")]++
	}

	series := make([]DayCount, 0, reportsPerDayWindow)
	for i := 0; i < reportsPerDayWindow; i++ {
		date := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, DayCount{Date: date, Count: counts[date]})
	}
	return series, nil
}

// feedbackSummary tallies feedback per label, one entry per defined label in
// canonical order, zero-filled for labels never chosen.
func (a *Aggregator) feedbackSummary() ([]FeedbackCount, error) {
	rows := []FeedbackCount{}
	err := a.DB.Model(&models.Feedback{}).
		Select("value, COUNT(id) AS count").
		Group("value").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.FeedbackValue]int64, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Count
	}

	summary := make([]FeedbackCount, 0, len(models.FeedbackValues))
	for _, value := range models.FeedbackValues {
		summary = append(summary, FeedbackCount{Value: value, Count: counts[value]})
	}
	return summary, nil
}

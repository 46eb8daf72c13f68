package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campus-watch/api-go/models"
	"gorm.io/gorm"
)

// Actor is the capability value protected operations act on. Handlers build
// it from the session once; services never inspect ambient session state.
type Actor struct {
	ID   uint
	Role models.Role
}

// ReportService owns the report lifecycle: creation, status transitions and
// soft-deletion, plus the best-effort notifications each of them triggers.
type ReportService struct {
	DB     *gorm.DB
	Outbox *Outbox
}

func NewReportService(db *gorm.DB, outbox *Outbox) *ReportService {
	return &ReportService{DB: db, Outbox: outbox}
}

// Create records a new incident for the acting student, auto-categorizes it
// and alerts every admin and security account. The report is committed
// before the alert is enqueued.
func (rs *ReportService) Create(actor Actor, description, imageURL string) (*models.Report, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, validationError("description is required")
	}

	report := models.Report{
		UserID:      actor.ID,
		Description: description,
		Category:    Categorize(description),
		ImageURL:    imageURL,
		Status:      models.StatusPending,
	}

	if err := rs.DB.Create(&report).Error; err != nil {
		return nil, err
	}

	rs.notifyStaffOfNewReport(&report)
	return &report, nil
}

// UpdateStatus moves a report through the lifecycle state machine. Only
// security and admin actors may transition status; the owning student cannot.
// The new status is committed before the owner notification is enqueued.
func (rs *ReportService) UpdateStatus(actor Actor, reportID uint, next models.Status) (*models.Report, error) {
	if !actor.Role.IsStaff() {
		return nil, forbiddenError("only security or admin can update report status")
	}
	if !next.Valid() {
		return nil, validationError("unknown status %q", next)
	}

	var report models.Report
	if err := rs.DB.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("report %d", reportID)
		}
		return nil, err
	}

	if !report.Status.CanTransitionTo(next) {
		return nil, conflictError("cannot move report from %q to %q", report.Status, next)
	}

	if err := rs.DB.Model(&report).Update("status", next).Error; err != nil {
		return nil, err
	}
	report.Status = next

	rs.notifyOwnerOfStatus(&report)
	return &report, nil
}

// SoftDelete hides a report from its owner's listing. Only the owning
// student may do this; status is untouched and the record keeps counting in
// administrative aggregates and feedback eligibility.
func (rs *ReportService) SoftDelete(actor Actor, reportID uint) error {
	var report models.Report
	if err := rs.DB.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("report %d", reportID)
		}
		return err
	}

	if report.UserID != actor.ID {
		return forbiddenError("report %d is not owned by user %d", reportID, actor.ID)
	}

	now := time.Now()
	return rs.DB.Model(&report).Updates(map[string]interface{}{
		"deleted":    true,
		"deleted_at": &now,
	}).Error
}

// ListOwn returns the actor's reports, most recent first, excluding
// soft-deleted ones.
func (rs *ReportService) ListOwn(actor Actor) ([]models.Report, error) {
	var reports []models.Report
	err := rs.DB.
		Where("user_id = ? AND deleted = ?", actor.ID, false).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// ListAll returns every report with its owner preloaded, for the staff
// dashboards. Soft-deleted reports are included.
func (rs *ReportService) ListAll() ([]models.Report, error) {
	var reports []models.Report
	err := rs.DB.
		Preload("User").
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (rs *ReportService) notifyStaffOfNewReport(report *models.Report) {
	if rs.Outbox == nil {
		return
	}

	var staff []models.User
	if err := rs.DB.Where("role IN ?", []models.Role{models.RoleAdmin, models.RoleSecurity}).Find(&staff).Error; err != nil {
		// Best effort: the report is already committed.
		return
	}

	emails := make([]string, 0, len(staff))
	for _, u := range staff {
		emails = append(emails, u.Email)
	}

	body := fmt.Sprintf(
		"A new incident has been reported.\n\nCategory: %s\nDescription: %s\nStatus: %s\nTime: %s\n",
		report.Category, report.Description, report.Status, report.CreatedAt.Format(time.RFC1123),
	)
	rs.Outbox.Enqueue(Message{
		To:      emails,
		Subject: "New campus security incident reported",
		Body:    body,
	})
}

func (rs *ReportService) notifyOwnerOfStatus(report *models.Report) {
	if rs.Outbox == nil {
		return
	}

	var owner models.User
	if err := rs.DB.First(&owner, report.UserID).Error; err != nil {
		return
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nThe status of your incident report #%d is now: %s.\n",
		owner.FirstName, report.ID, report.Status,
	)
	rs.Outbox.Enqueue(Message{
		To:      []string{owner.Email},
		Subject: fmt.Sprintf("Incident report #%d status update", report.ID),
		Body:    body,
	})
}

package services

import (
	"errors"
	"testing"

	"github.com/campus-watch/api-go/models"
)

func setupFeedbackTest(t *testing.T) (*FeedbackService, *ReportService, Actor, Actor, *models.Report) {
	t.Helper()

	db := newTestDB(t)
	student := createTestUser(t, db, "s100", models.RoleStudent)
	security := createTestUser(t, db, "sec1", models.RoleSecurity)

	rs := NewReportService(db, nil)
	owner := Actor{ID: student.ID, Role: student.Role}
	staff := Actor{ID: security.ID, Role: security.Role}

	report, err := rs.Create(owner, "someone stole my bag", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return NewFeedbackService(db), rs, owner, staff, report
}

func TestSubmitFeedbackRequiresAddressedReport(t *testing.T) {
	fs, rs, owner, staff, report := setupFeedbackTest(t)

	if _, err := fs.Submit(owner, report.ID, models.FeedbackGood); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for Pending report, got %v", err)
	}

	if _, err := rs.UpdateStatus(staff, report.ID, models.StatusInProgress); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := fs.Submit(owner, report.ID, models.FeedbackGood); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for In Progress report, got %v", err)
	}

	if _, err := rs.UpdateStatus(staff, report.ID, models.StatusAddressed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := fs.Submit(owner, report.ID, models.FeedbackGood); err != nil {
		t.Fatalf("expected success once Addressed, got %v", err)
	}
}

func TestSubmitFeedbackRejectsDuplicate(t *testing.T) {
	fs, rs, owner, staff, report := setupFeedbackTest(t)

	if _, err := rs.UpdateStatus(staff, report.ID, models.StatusAddressed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if _, err := fs.Submit(owner, report.ID, models.FeedbackAmazing); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if _, err := fs.Submit(owner, report.ID, models.FeedbackBad); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on second submission, got %v", err)
	}

	var count int64
	fs.DB.Model(&models.Feedback{}).Where("report_id = ? AND user_id = ?", report.ID, owner.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one feedback row, got %d", count)
	}
}

func TestSubmitFeedbackValidation(t *testing.T) {
	fs, rs, owner, staff, report := setupFeedbackTest(t)

	if _, err := rs.UpdateStatus(staff, report.ID, models.StatusAddressed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if _, err := fs.Submit(owner, report.ID, models.FeedbackValue("Meh")); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown label, got %v", err)
	}
	if _, err := fs.Submit(owner, 9999, models.FeedbackGood); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found error for missing report, got %v", err)
	}
}

func TestSubmitFeedbackAllowedOnSoftDeletedReport(t *testing.T) {
	fs, rs, owner, staff, report := setupFeedbackTest(t)

	if _, err := rs.UpdateStatus(staff, report.ID, models.StatusAddressed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := rs.SoftDelete(owner, report.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	if _, err := fs.Submit(owner, report.ID, models.FeedbackNoResponse); err != nil {
		t.Fatalf("soft-delete must not affect feedback eligibility: %v", err)
	}
}

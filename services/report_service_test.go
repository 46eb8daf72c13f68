package services

import (
	"errors"
	"testing"

	"github.com/campus-watch/api-go/models"
)

func TestCreateReportCategorizesAndNotifiesStaff(t *testing.T) {
	db := newTestDB(t)
	student := createTestUser(t, db, "s100", models.RoleStudent)
	createTestUser(t, db, "admin1", models.RoleAdmin)
	createTestUser(t, db, "sec1", models.RoleSecurity)

	sender := &fakeSender{}
	outbox := newTestOutbox(sender)
	rs := NewReportService(db, outbox)

	report, err := rs.Create(Actor{ID: student.ID, Role: student.Role}, "someone stole my laptop", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if report.Category != models.CategoryTheft {
		t.Fatalf("expected category Theft, got %q", report.Category)
	}
	if report.Status != models.StatusPending {
		t.Fatalf("expected initial status Pending, got %q", report.Status)
	}

	outbox.Close()
	msgs := sender.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected one staff alert, got %d", len(msgs))
	}
	if len(msgs[0].To) != 2 {
		t.Fatalf("expected alert to reach admin and security, got recipients %v", msgs[0].To)
	}
}

func TestCreateReportRejectsEmptyDescription(t *testing.T) {
	db := newTestDB(t)
	student := createTestUser(t, db, "s100", models.RoleStudent)
	rs := NewReportService(db, nil)

	_, err := rs.Create(Actor{ID: student.ID, Role: student.Role}, "   ", "")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusRoleGating(t *testing.T) {
	db := newTestDB(t)
	student := createTestUser(t, db, "s100", models.RoleStudent)
	security := createTestUser(t, db, "sec1", models.RoleSecurity)
	rs := NewReportService(db, nil)

	report, err := rs.Create(Actor{ID: student.ID, Role: student.Role}, "a strange man outside", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The owning student may not transition status, whatever the payload.
	_, err = rs.UpdateStatus(Actor{ID: student.ID, Role: student.Role}, report.ID, models.StatusAddressed)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden error for student actor, got %v", err)
	}

	updated, err := rs.UpdateStatus(Actor{ID: security.ID, Role: security.Role}, report.ID, models.StatusInProgress)
	if err != nil {
		t.Fatalf("UpdateStatus by security: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Fatalf("expected In Progress, got %q", updated.Status)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	student := createTestUser(t, db, "s100", models.RoleStudent)
	security := createTestUser(t, db, "sec1", models.RoleSecurity)
	rs := NewReportService(db, nil)
	staff := Actor{ID: security.ID, Role: security.Role}

	report, _ := rs.Create(Actor{ID: student.ID, Role: student.Role}, "broken window", "")

	if _, err := rs.UpdateStatus(staff, report.ID, models.Status("Archived")); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}

	if _, err := rs.UpdateStatus(staff, report.ID, models.StatusAddressed); err != nil {
		t.Fatalf("Pending -> Addressed should be allowed: %v", err)
	}

	// Addressed is terminal.
	if _, err := rs.UpdateStatus(staff, report.ID, models.StatusPending); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict error for backward transition, got %v", err)
	}

	if _, err := rs.UpdateStatus(staff, 9999, models.StatusAddressed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found error for missing report, got %v", err)
	}
}

func TestUpdateStatusNotifiesOwnerAfterCommit(t *testing.T) {
	db := newTestDB(t)
	student := createTestUser(t, db, "s100", models.RoleStudent)
	security := createTestUser(t, db, "sec1", models.RoleSecurity)

	sender := &fakeSender{failures: 999} // delivery always fails
	outbox := newTestOutbox(sender)
	rs := NewReportService(db, outbox)

	report, _ := rs.Create(Actor{ID: student.ID, Role: student.Role}, "theft in the hostel", "")

	updated, err := rs.UpdateStatus(Actor{ID: security.ID, Role: security.Role}, report.ID, models.StatusAddressed)
	if err != nil {
		t.Fatalf("status change must commit even when notification fails: %v", err)
	}
	outbox.Close()

	var stored models.Report
	if err := db.First(&stored, updated.ID).Error; err != nil {
		t.Fatalf("reload report: %v", err)
	}
	if stored.Status != models.StatusAddressed {
		t.Fatalf("expected committed status Addressed, got %q", stored.Status)
	}
}

func TestSoftDelete(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "s100", models.RoleStudent)
	other := createTestUser(t, db, "s200", models.RoleStudent)
	rs := NewReportService(db, nil)
	ownerActor := Actor{ID: owner.ID, Role: owner.Role}

	report, _ := rs.Create(ownerActor, "stolen phone", "")

	if err := rs.SoftDelete(Actor{ID: other.ID, Role: other.Role}, report.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden error for non-owner, got %v", err)
	}
	if err := rs.SoftDelete(ownerActor, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found error for missing report, got %v", err)
	}

	if err := rs.SoftDelete(ownerActor, report.ID); err != nil {
		t.Fatalf("SoftDelete by owner: %v", err)
	}

	var stored models.Report
	if err := db.First(&stored, report.ID).Error; err != nil {
		t.Fatalf("soft-deleted report must remain in the store: %v", err)
	}
	if !stored.Deleted || stored.DeletedAt == nil {
		t.Fatalf("expected deleted flag and timestamp, got %+v", stored)
	}
	if stored.Status != models.StatusPending {
		t.Fatalf("soft-delete must not alter status, got %q", stored.Status)
	}

	own, err := rs.ListOwn(ownerActor)
	if err != nil {
		t.Fatalf("ListOwn: %v", err)
	}
	if len(own) != 0 {
		t.Fatalf("soft-deleted report must disappear from the owner's listing, got %d entries", len(own))
	}

	all, err := rs.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("soft-deleted report must stay visible to staff, got %d entries", len(all))
	}
}

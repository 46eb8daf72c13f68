package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campus-watch/api-go/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// A pooled :memory: database is one database per connection; pin the
	// pool to a single connection so every query sees the same store.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Report{}, &models.Feedback{}, &models.PasswordResetToken{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, matric string, role models.Role) *models.User {
	t.Helper()

	user := models.User{
		MatricNumber:  matric,
		FirstName:     "Test",
		LastName:      "User",
		Email:         matric + "@student.example.edu",
		CourseOfStudy: "Computer Science",
		Password:      "not-a-real-hash",
		Role:          role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user %s: %v", matric, err)
	}
	return &user
}

type fakeSender struct {
	mu       sync.Mutex
	sent     []Message
	failures int
}

func (f *fakeSender) Send(to []string, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, Message{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeSender) messages() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.sent))
	copy(out, f.sent)
	return out
}

func newTestOutbox(sender Sender) *Outbox {
	ob := &Outbox{
		sender:     sender,
		queue:      make(chan Message, 16),
		retries:    3,
		retryDelay: time.Millisecond,
	}
	ob.wg.Add(1)
	go ob.run()
	return ob
}

package models

import (
	"time"
)

// Category is the closed set of incident categories assigned by the
// categorizer.
type Category string

const (
	CategoryTheft      Category = "Theft"
	CategoryAssault    Category = "Assault"
	CategorySuspicious Category = "Suspicious Activity"
	CategoryOther      Category = "Other"
)

// Status is the report lifecycle state machine. Pending is the initial
// state; Addressed is terminal and gates feedback eligibility.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusAddressed  Status = "Addressed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusAddressed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving from s to
// next. Only forward moves are allowed: Pending may go to In Progress or
// straight to Addressed, In Progress only to Addressed.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress || next == StatusAddressed
	case StatusInProgress:
		return next == StatusAddressed
	}
	return false
}

// Report is an incident record owned by the submitting student.
//
// Soft-delete is an explicit flag rather than gorm.DeletedAt: a deleted
// report is hidden from the owner's own listing only, and must keep
// contributing to administrative aggregates and feedback eligibility.
type Report struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Description string     `gorm:"not null" json:"description"`
	Category    Category   `gorm:"not null;default:'Other'" json:"category"`
	ImageURL    string     `json:"image_url,omitempty"`
	Status      Status     `gorm:"not null;default:'Pending'" json:"status"`
	Deleted     bool       `gorm:"not null;default:false" json:"deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

package models

import (
	"time"
)

// Role is the closed set of account roles. Students self-register; admin and
// security accounts are provisioned at deployment time.
type Role string

const (
	RoleStudent  Role = "student"
	RoleAdmin    Role = "admin"
	RoleSecurity Role = "security"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleSecurity:
		return true
	}
	return false
}

// IsStaff reports whether the role may triage reports.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSecurity
}

type User struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	MatricNumber  string    `gorm:"unique;not null" json:"matric_number"`
	FirstName     string    `gorm:"not null" json:"first_name"`
	LastName      string    `gorm:"not null" json:"last_name"`
	Email         string    `gorm:"unique;not null" json:"email"`
	CourseOfStudy string    `gorm:"not null" json:"course_of_study"`
	Password      string    `gorm:"not null" json:"-"` // Don't expose password in JSON
	Role          Role      `gorm:"not null;default:'student'" json:"role"`

	Reports []Report `json:"reports,omitempty" gorm:"foreignKey:UserID"`
}

package models

import (
	"time"
)

const PasswordResetTokenTTL = time.Hour

// PasswordResetToken is an ephemeral recovery credential. Only the SHA-256
// hash of the raw token is stored; the raw value appears once, in the reset
// link emailed to the user. Consumed tokens are deleted.
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TokenHash string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (t PasswordResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

package config

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campus-watch/api-go/models"
)

// EnsureDefaultAccounts provisions one admin and one security account if
// none exist for the role. It is idempotent and invoked explicitly by
// cmd/provision at deployment time, never during server startup.
func EnsureDefaultAccounts(db *gorm.DB) error {
	if err := ensureAccount(db, models.RoleAdmin, LoadAdminBootstrap()); err != nil {
		return err
	}
	return ensureAccount(db, models.RoleSecurity, LoadSecurityBootstrap())
}

func ensureAccount(db *gorm.DB, role models.Role, account BootstrapAccount) error {
	var existing models.User
	err := db.Where("role = ?", role).First(&existing).Error
	if err == nil {
		log.Printf("%s account already exists (%s)", role, existing.MatricNumber)
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	if account.Email == "" {
		return fmt.Errorf("no email configured for default %s account", role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		MatricNumber:  account.MatricNumber,
		FirstName:     account.FirstName,
		LastName:      account.LastName,
		Email:         account.Email,
		CourseOfStudy: "N/A",
		Password:      string(hashed),
		Role:          role,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Printf("%s account created (%s)", role, user.MatricNumber)
	return nil
}

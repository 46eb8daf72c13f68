package config

import (
	"fmt"
	"os"
	"strconv"
)

type EmailConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
}

func LoadEmailConfig() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port <= 0 {
		port = 587
	}

	return EmailConfig{
		Host:        os.Getenv("SMTP_HOST"),
		Port:        port,
		Username:    os.Getenv("SMTP_USERNAME"),
		Password:    os.Getenv("SMTP_PASSWORD"),
		FromAddress: os.Getenv("SMTP_FROM"),
	}
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetR2Config() *R2Config {
	return &R2Config{
		AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("CLOUDFLARE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("CLOUDFLARE_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("CLOUDFLARE_BUCKET_NAME"),
		PublicURL:       os.Getenv("CLOUDFLARE_PUBLIC_URL"),
		Region:          "auto",
	}
}

// SessionSecret signs session cookies.
func SessionSecret() string {
	return os.Getenv("SESSION_SECRET")
}

// BaseURL is the externally reachable origin used in password reset links.
func BaseURL() string {
	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base
}

// BootstrapAccount describes one provisioned staff account.
type BootstrapAccount struct {
	MatricNumber string
	FirstName    string
	LastName     string
	Email        string
	Password     string
}

func LoadAdminBootstrap() BootstrapAccount {
	return BootstrapAccount{
		MatricNumber: envOr("ADMIN_USERNAME", "admin123"),
		FirstName:    "Admin",
		LastName:     "User",
		Email:        os.Getenv("ADMIN_EMAIL"),
		Password:     envOr("ADMIN_PASSWORD", "Admin@123"),
	}
}

func LoadSecurityBootstrap() BootstrapAccount {
	return BootstrapAccount{
		MatricNumber: envOr("SECURITY_USERNAME", "security123"),
		FirstName:    "Security",
		LastName:     "Officer",
		Email:        os.Getenv("SECURITY_EMAIL"),
		Password:     envOr("SECURITY_PASSWORD", "Security@123"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ValidateDatabaseConfig checks the connection settings InitDB will use.
func ValidateDatabaseConfig() error {
	if os.Getenv("DATABASE_URL") != "" {
		return nil
	}
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
		if os.Getenv(key) == "" {
			return fmt.Errorf("missing database environment variable %s", key)
		}
	}
	return nil
}

func ValidateSessionConfig() error {
	if SessionSecret() == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	return nil
}

func ValidateEmailConfig() error {
	if os.Getenv("SMTP_HOST") == "" {
		return fmt.Errorf("SMTP_HOST is required")
	}
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err != nil || port <= 0 {
			return fmt.Errorf("invalid SMTP_PORT %q", portStr)
		}
	}
	return nil
}

// Validate aggregates the per-section checks run at startup.
func Validate() error {
	if err := ValidateDatabaseConfig(); err != nil {
		return err
	}
	if err := ValidateSessionConfig(); err != nil {
		return err
	}
	return ValidateEmailConfig()
}

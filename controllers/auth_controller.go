package controllers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campus-watch/api-go/config"
	"github.com/campus-watch/api-go/models"
	"github.com/campus-watch/api-go/services"
	"github.com/campus-watch/api-go/utils"
)

type AuthController struct {
	DB     *gorm.DB
	Outbox *services.Outbox
}

func NewAuthController(db *gorm.DB, outbox *services.Outbox) *AuthController {
	return &AuthController{DB: db, Outbox: outbox}
}

// validatePasswordStrength requires at least 8 characters with a lowercase
// letter, an uppercase letter, a digit and a symbol.
func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		return fmt.Errorf("password must contain lowercase, uppercase, digit and symbol characters")
	}
	return nil
}

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		MatricNumber  string `form:"matricNumber" json:"matricNumber" binding:"required"`
		FirstName     string `form:"firstName" json:"firstName" binding:"required"`
		LastName      string `form:"lastName" json:"lastName" binding:"required"`
		Email         string `form:"email" json:"email" binding:"required,email"`
		CourseOfStudy string `form:"courseOfStudy" json:"courseOfStudy" binding:"required"`
		Password      string `form:"password" json:"password" binding:"required"`
	}

	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required.", "success": false})
		return
	}

	if err := validatePasswordStrength(input.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var existing models.User
	if err := ac.DB.Where("matric_number = ?", input.MatricNumber).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Matric number already exists.", "success": false})
		return
	}
	if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use.", "success": false})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password", "success": false})
		return
	}

	user := models.User{
		MatricNumber:  input.MatricNumber,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		CourseOfStudy: input.CourseOfStudy,
		Password:      string(hashedPassword),
		Role:          models.RoleStudent,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Matric number or email already exists.", "success": false})
		return
	}

	if err := ac.setSessionCookie(c, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not establish session", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "User registered successfully",
		"redirect": "/dashboard",
		"user": gin.H{
			"id":           user.ID,
			"matricNumber": user.MatricNumber,
			"firstName":    user.FirstName,
			"lastName":     user.LastName,
			"email":        user.Email,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		MatricNumber string `form:"matricNumber" json:"matricNumber" binding:"required"`
		Password     string `form:"password" json:"password" binding:"required"`
	}

	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var user models.User
	if err := ac.DB.Where("matric_number = ?", input.MatricNumber).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found. Please check your login details.", "success": false})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect password. Please try again.", "success": false})
		return
	}

	if err := ac.setSessionCookie(c, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not establish session", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"redirect": redirectTargetFor(user.Role),
		"user": gin.H{
			"id":           user.ID,
			"matricNumber": user.MatricNumber,
			"firstName":    user.FirstName,
			"role":         user.Role,
		},
	})
}

func redirectTargetFor(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/admin-dashboard"
	case models.RoleSecurity:
		return "/security-dashboard"
	default:
		return "/dashboard"
	}
}

func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// ShowForgotPassword exists so the reset flow has a GET entry point; form
// rendering lives client-side.
func (ac *AuthController) ShowForgotPassword(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Submit your matric number to receive a reset link."})
}

func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var input struct {
		MatricNumber string `form:"matricNumber" json:"matricNumber" binding:"required"`
	}

	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var user models.User
	if err := ac.DB.Where("matric_number = ?", input.MatricNumber).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found.", "success": false})
		return
	}

	rawToken, tokenHash, err := generateResetToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token", "success": false})
		return
	}

	resetToken := models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(models.PasswordResetTokenTTL),
	}
	if err := ac.DB.Create(&resetToken).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error.", "success": false})
		return
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", config.BaseURL(), rawToken)
	ac.Outbox.Enqueue(services.Message{
		To:      []string{user.Email},
		Subject: "Password Reset Request",
		Body: fmt.Sprintf(
			"Hello %s,\n\nPlease use the link below to reset your password:\n\n%s\n\nThis link is valid for 1 hour.\n",
			user.FirstName, resetLink,
		),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Password reset link sent to %s", user.Email),
	})
}

// ShowResetPassword validates the token before the client renders the form.
func (ac *AuthController) ShowResetPassword(c *gin.Context) {
	if _, err := ac.findValidResetToken(c.Param("token")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token.", "success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": c.Param("token")})
}

func (ac *AuthController) ResetPassword(c *gin.Context) {
	var input struct {
		NewPassword string `form:"newPassword" json:"newPassword" binding:"required"`
	}

	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	resetToken, err := ac.findValidResetToken(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token.", "success": false})
		return
	}

	if err := validatePasswordStrength(input.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error.", "success": false})
		return
	}

	if err := ac.DB.Model(&models.User{}).Where("id = ?", resetToken.UserID).
		Update("password", string(hashedPassword)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error.", "success": false})
		return
	}

	// Token is single use.
	ac.DB.Delete(&models.PasswordResetToken{}, resetToken.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password has been reset. You can now log in with your new password.",
	})
}

func (ac *AuthController) findValidResetToken(rawToken string) (*models.PasswordResetToken, error) {
	if rawToken == "" {
		return nil, errors.New("missing token")
	}

	sum := sha256.Sum256([]byte(rawToken))
	tokenHash := hex.EncodeToString(sum[:])

	var resetToken models.PasswordResetToken
	if err := ac.DB.Where("token_hash = ?", tokenHash).First(&resetToken).Error; err != nil {
		return nil, err
	}
	if resetToken.Expired(time.Now()) {
		return nil, errors.New("token expired")
	}
	return &resetToken, nil
}

func generateResetToken() (string, string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", "", err
	}
	raw := hex.EncodeToString(tokenBytes)
	sum := sha256.Sum256([]byte(raw))
	return raw, hex.EncodeToString(sum[:]), nil
}

func (ac *AuthController) setSessionCookie(c *gin.Context, user *models.User) error {
	token, err := utils.GenerateSessionToken(user, config.SessionSecret())
	if err != nil {
		return err
	}
	c.SetCookie(utils.SessionCookieName, token, int(utils.SessionTTL.Seconds()), "/", "", false, true)
	return nil
}

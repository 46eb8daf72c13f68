package utils

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"github.com/campus-watch/api-go/models"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// SessionTTL bounds how long a login stays valid.
const SessionTTL = 24 * time.Hour

type UserClaims struct {
	UserID    uint        `json:"user_id"`
	FirstName string      `json:"first_name"`
	Role      models.Role `json:"role"`
}

type contextKey string

const UserContextKey contextKey = "user"

// GetUser returns the session claims the auth middleware stored on the
// request context, or nil for unauthenticated requests.
func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}

// GenerateSessionToken signs the user's identity into the HS256 token the
// session cookie carries.
func GenerateSessionToken(user *models.User, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID,
		"first_name": user.FirstName,
		"role":       string(user.Role),
		"exp":        time.Now().Add(SessionTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseSessionToken verifies a session token and recovers the claims.
func ParseSessionToken(tokenString, secret string) (*UserClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid session token claims")
	}
	role, _ := claims["role"].(string)
	firstName, _ := claims["first_name"].(string)

	return &UserClaims{
		UserID:    uint(userID),
		FirstName: firstName,
		Role:      models.Role(role),
	}, nil
}

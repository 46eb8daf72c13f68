package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-watch/api-go/config"
	"github.com/campus-watch/api-go/models"
	"github.com/campus-watch/api-go/utils"
)

// RequireAuth resolves the session cookie into utils.UserClaims on the
// request context. Requests without a valid session are redirected to the
// login entry point.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := utils.ParseSessionToken(token, config.SessionSecret())
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), claims)
		c.Next()
	}
}

// RequireRole gates a route to the given roles. It assumes RequireAuth ran
// first.
func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := utils.GetUser(c)
		if claims == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		for _, role := range allowed {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized", "success": false})
		c.Abort()
	}
}

package middlewares

import (
	"net/http"

	"stresshub/models"

	"github.com/gin-gonic/gin"
)

// Identity reads the caller identity injected by the upstream gateway.
// The gateway has already authenticated the user; this service only
// trusts its X-User-* headers. Requests without a complete identity
// are rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-Id")
		email := c.GetHeader("X-User-Email")
		role := c.GetHeader("X-User-Role")

		if userID == "" || role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity headers"})
			c.Abort()
			return
		}

		switch models.Role(role) {
		case models.RoleEmployee, models.RoleSupervisor, models.RoleHRManager, models.RolePsychiatrist:
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown role: " + role})
			c.Abort()
			return
		}

		c.Set("userId", userID)
		c.Set("email", email)
		c.Set("role", models.Role(role))
		c.Next()
	}
}

// RequireRoles gates a handler to the given roles.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		role := value.(models.Role)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

// CurrentUserID returns the caller's user id from the gin context.
func CurrentUserID(c *gin.Context) string {
	return c.GetString("userId")
}

// CurrentRole returns the caller's role from the gin context.
func CurrentRole(c *gin.Context) models.Role {
	value, exists := c.Get("role")
	if !exists {
		return ""
	}
	return value.(models.Role)
}

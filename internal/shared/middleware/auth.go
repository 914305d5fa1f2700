package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/shared/auth"
	"bookreview-backend/internal/shared/response"
	"bookreview-backend/pkg/jwt"
)

// RequireAuth validates the bearer token and resolves the caller identity.
// Any failure (missing header, bad format, invalid token) is a 401; the
// response never says which check failed.
func RequireAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		claims, err := manager.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		auth.IntoContext(c, auth.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Roles:    claims.Roles,
		})

		c.Next()
	}
}

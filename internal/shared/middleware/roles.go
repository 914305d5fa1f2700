package middleware

import (
	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/shared/auth"
	"bookreview-backend/internal/shared/response"
)

// RequireRoles checks that the authenticated identity carries at least one
// of the required roles. Must run after RequireAuth. The requirement is
// plain data; handlers that also need an ownership check do that themselves
// against the resolved identity.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.FromContext(c)
		if !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		if !identity.HasAnyRole(roles...) {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

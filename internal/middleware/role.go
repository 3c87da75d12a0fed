package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kasirkita/pos_backend/internal/core/domain"
)

// RequireRole restricts a route group to users holding one of the allowed
// roles. It must run after AuthMiddleware.
func RequireRole(allowed ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		role, ok := GetUserRoleFromContext(c)
		if !ok {
			logger.Warn("Role missing from authenticated request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Role missing"})
			return
		}

		for _, a := range allowed {
			if domain.UserRole(role) == a {
				c.Next()
				return
			}
		}

		logger.Warn("Access denied for role", "role", role)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden - Access denied"})
	}
}

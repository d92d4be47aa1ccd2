package middleware

import (
	"net/http"
	"strings"

	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware
const (
	ContextStaffID = "staffID"
	ContextService = "service"
	ContextToken   = "token"
)

// RevocationChecker reports tokens revoked by a logout
type RevocationChecker interface {
	IsRevoked(token string) bool
}

// AuthMiddleware validates JWT access token from Authorization header
func AuthMiddleware(revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			c.Abort()
			return
		}

		token := parts[1]
		if revoked.IsRevoked(token) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Token has been revoked")
			c.Abort()
			return
		}

		claims, err := utils.ValidateAccessToken(token)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		// Inject claims into context
		c.Set(ContextStaffID, claims.StaffID)
		c.Set(ContextService, claims.Service)
		c.Set(ContextToken, token)

		c.Next()
	}
}

// StaffID returns the authenticated staff member's ID, or "" outside AuthMiddleware
func StaffID(c *gin.Context) string {
	return c.GetString(ContextStaffID)
}

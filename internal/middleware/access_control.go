package middleware

import (
	"net/http"

	"hospital-backoffice/internal/models"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RequireService lets a request through when the authenticated staff member belongs to
// one of the given services. Administrators pass every gate.
func RequireService(services ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		service, exists := c.Get(ContextService)
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if service == models.ServiceAdmin {
			c.Next()
			return
		}
		for _, allowed := range services {
			if service == allowed {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Access denied for your service")
		c.Abort()
	}
}

// RequireAdmin checks that the authenticated staff member is an administrator
func RequireAdmin() gin.HandlerFunc {
	return RequireService(models.ServiceAdmin)
}

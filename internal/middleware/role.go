package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gse-tracker/pkg/utils"
)

// RoleMiddleware is a coarse pre-filter over the token's role claim.
// Authoritative checks happen in the policy layer against the stored
// profile; this only rejects requests that could never succeed.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleKey)
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		userRole := role.(string)

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func SuperAdminOnly() gin.HandlerFunc {
	return RoleMiddleware("super_admin")
}

func AdminOrAbove() gin.HandlerFunc {
	return RoleMiddleware("super_admin", "admin")
}

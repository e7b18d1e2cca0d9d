package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRoles checks the authenticated role against a per-route allow-list
func RequireRoles(roles ...string) gin.HandlerFunc {
	// Build the permission table once per route
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole) // Get role from context
		// Check if the role was injected by the auth middleware
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check the role against the allow-list
		if r, ok := role.(string); !ok || !allowed[r] {
			// If not allowed, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		// If allowed, proceed to the next handler
		c.Next()
	}
}

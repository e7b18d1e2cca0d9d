package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"ecommerce_api/internal/auth" // JWT parsing and the token registry

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by JWTAuthMiddleware for downstream handlers
const (
	ContextUserID = "userID" // Authenticated user id (uint)
	ContextEmail  = "email"  // Authenticated email
	ContextRole   = "role"   // Authenticated role
	ContextToken  = "token"  // Raw bearer token
)

// JWTAuthMiddleware validates bearer tokens against both the signature and the
// cache-side token registry, then injects the identity into the request context.
// A signature-valid token that has been revoked is rejected. The role comes from
// the user's current database record, not the signed claims, so role changes and
// deactivations apply to tokens already in flight.
func JWTAuthMiddleware(secret string, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := auth.ParseJWT(tokenStr, secret)        // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		// The signature alone is not enough: the token must still be tracked as
		// valid for its claimed owner
		if !tokens.Validate(c.Request.Context(), tokenStr, claims.UserID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		// The claims only identify the account; the authoritative state comes
		// from the database, so a deleted or deactivated user is rejected even
		// while its token is still tracked
		user, err := tokens.ResolveUser(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		// Slide the cache-side validity window on every authenticated request
		_ = tokens.Refresh(c.Request.Context(), tokenStr)
		c.Set(ContextUserID, user.ID)   // Store userID in context
		c.Set(ContextEmail, user.Email) // Store email in context
		c.Set(ContextRole, user.Role)   // Store current role in context
		c.Set(ContextToken, tokenStr)   // Store raw token for logout
		c.Next()                            // Proceed to the next handler
	}
}

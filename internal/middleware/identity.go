package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// callerHeader carries the authenticated user's ID, installed by the upstream
// gateway. Authentication itself happens outside this service; this core
// trusts the identity it is handed and applies it as a filter and audit
// attribution on every read and write.
const callerHeader = "X-User-ID"

// IdentityMiddleware extracts the caller identity set by the gateway and
// stores it in the request context. Requests without an identity are rejected.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(callerHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing caller identity"})
			return
		}
		c.Set(string(userIDKey), userID)
		c.Next()
	}
}

// README: Firebase bearer-token auth middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/infra"
)

const uidKey = "auth_uid"

// AnonymousUID identifies callers on deployments that run without auth.
const AnonymousUID = "anonymous"

// Auth verifies the Authorization bearer token against Firebase and stores
// the caller's uid in the request context. Requests without a valid token
// are rejected with 401.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(uidKey, decoded.UID)
		c.Next()
	}
}

// CallerUID returns the authenticated uid, or AnonymousUID on routes that
// run without the Auth middleware.
func CallerUID(c *gin.Context) string {
	if uid := c.GetString(uidKey); uid != "" {
		return uid
	}
	return AnonymousUID
}

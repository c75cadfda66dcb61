package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/solarline/quotation-service/internal/auth"
)

// Context keys set by RequireAuth.
const (
	ContextUserID   = "auth_user_id"
	ContextUsername = "auth_username"
	ContextIsAdmin  = "auth_is_admin"
	ContextTokenID  = "auth_token_id"
	ContextTokenExp = "auth_token_exp"
)

// RevocationCheck reports whether an access token id is blacklisted.
// A nil check disables revocation lookups.
type RevocationCheck func(c *gin.Context, tokenID string) (bool, error)

// RequireAuth validates the Bearer token, rejects revoked tokens and
// stores the caller's identity in the request context.
func RequireAuth(tokens *auth.TokenManager, revoked RevocationCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := tokens.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if revoked != nil {
			isRevoked, err := revoked(c, claims.ID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token verification failed"})
				return
			}
			if isRevoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
				return
			}
		}
		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextIsAdmin, claims.IsAdmin)
		c.Set(ContextTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextTokenExp, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// RequireAdmin rejects callers whose token lacks the admin flag.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

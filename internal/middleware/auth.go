package middleware

import (
	"context"
	"net/http"
	"strings"

	"homewidget/internal/domain"
	"homewidget/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// TokenVerifier verifies a bearer token string.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// RevocationChecker answers whether an access-token jti has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) bool
}

// UserLoader resolves a token subject to an account.
type UserLoader interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// JWTAuth resolves the caller's identity for protected routes. Every
// rejection (missing header, bad signature, expiry, wrong type, blacklisted
// jti, unknown or inactive user) produces the same 401 so no token state
// leaks to the caller.
//
// On success the gin context carries user_id (int64), user_email and role.
func JWTAuth(codec TokenVerifier, blacklist RevocationChecker, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			unauthorized(c)
			return
		}

		// Deliberately not trimmed: Verify rejects whitespace-wrapped
		// tokens, and trimming here would mask header smuggling.
		raw := strings.TrimPrefix(h, "Bearer ")

		claims, err := codec.Verify(raw)
		if err != nil {
			unauthorized(c)
			return
		}
		if claims.TokenType != token.TypeAccess || claims.Subject == "" || claims.JTI == "" {
			unauthorized(c)
			return
		}

		if blacklist.IsRevoked(c.Request.Context(), claims.JTI) {
			unauthorized(c)
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil || !user.IsActive {
			unauthorized(c)
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_email", user.Email)
		c.Set("role", string(user.Role))
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHORIZED", "message": "Invalid or missing token"},
	})
}

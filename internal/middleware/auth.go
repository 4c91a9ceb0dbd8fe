package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medcampconnect/medcamp-api/internal/utils"
)

const (
	// CookieName is the session cookie issued by POST /jwt.
	CookieName = "token"

	claimsKey = "claims"
)

// Revocations reports tokens that were logged out before expiry.
type Revocations interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
}

// AuthMiddleware accepts the session cookie, or an Authorization: Bearer header
// when no cookie is present. revoked may be nil.
func AuthMiddleware(tokens *utils.TokenService, revoked Revocations) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			unauthorized(c)
			return
		}

		claims, err := tokens.ValidateJWT(tokenString)
		if err != nil {
			log.Printf("[%s] token rejected: %v", RequestID(c), err)
			unauthorized(c)
			return
		}

		if revoked != nil && claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				log.Printf("[%s] revocation check failed: %v", RequestID(c), err)
				unauthorized(c)
				return
			}
			if isRevoked {
				unauthorized(c)
				return
			}
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// ClaimsFrom returns the identity set by AuthMiddleware.
func ClaimsFrom(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok && claims != nil
}

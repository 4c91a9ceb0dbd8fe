package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medcampconnect/medcamp-api/internal/models"
)

type UserLookup interface {
	Lookup(ctx context.Context, email string) (*models.User, error)
}

// RequireRole lets the request through only when the stored user behind the
// token's email has the required role. It must run after AuthMiddleware.
func RequireRole(users UserLookup, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			unauthorized(c)
			return
		}

		user, err := users.Lookup(c.Request.Context(), claims.Email)
		if err != nil {
			log.Printf("[%s] role lookup for %s failed: %v", RequestID(c), claims.Email, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
			return
		}
		if !user.HasRole(role) {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

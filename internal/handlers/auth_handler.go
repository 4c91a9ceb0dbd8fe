package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medcampconnect/medcamp-api/internal/middleware"
)

type tokenRequest struct {
	Email string `json:"email" binding:"required"`
}

// sessionCookie writes the token cookie. In production the client runs on
// another site, so the cookie must be Secure and SameSite=None.
func (h *Handler) sessionCookie(c *gin.Context, value string, maxAge int) {
	if h.Production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(middleware.CookieName, value, maxAge, "/", "", h.Production, true)
}

// IssueToken handles POST /jwt.
func (h *Handler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
		return
	}

	token, _, err := h.Tokens.GenerateJWT(req.Email)
	if err != nil {
		log.Printf("[%s] IssueToken: %v", middleware.RequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not generate token"})
		return
	}

	h.sessionCookie(c, token, 0)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout handles GET /logout. The cookie is always cleared; with a revoker
// configured the token is also refused from now until it expires.
func (h *Handler) Logout(c *gin.Context) {
	if h.Revoker != nil {
		if token, err := c.Cookie(middleware.CookieName); err == nil && token != "" {
			if claims, err := h.Tokens.ValidateJWT(token); err == nil && claims.ID != "" {
				if err := h.Revoker.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
					log.Printf("[%s] Logout: %v", middleware.RequestID(c), err)
				}
			}
		}
	}

	h.sessionCookie(c, "", -1)
	log.Println("Logout successful")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

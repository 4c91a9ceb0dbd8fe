package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medcampconnect/medcamp-api/internal/models"
)

// UpsertUser handles PUT /user. The first call for an email stores the body
// with a timestamp; later calls return the stored record unchanged.
func (h *Handler) UpsertUser(c *gin.Context) {
	user, ok := bindDocument(c)
	if !ok {
		return
	}

	email, _ := user["email"].(string)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
		return
	}
	if raw, present := user["role"]; present {
		s, _ := raw.(string)
		if _, err := models.ParseRole(s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	existing, result, err := h.Users.Ensure(c.Request.Context(), user, h.Now())
	if err != nil {
		storeError(c, "UpsertUser", err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Users.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		storeError(c, "GetUser", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		storeError(c, "ListUsers", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

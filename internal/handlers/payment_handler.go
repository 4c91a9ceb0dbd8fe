package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medcampconnect/medcamp-api/internal/middleware"
	"github.com/medcampconnect/medcamp-api/internal/services"
)

// CreatePaymentIntent handles POST /create-payment-intent with body {"price": <decimal>}.
// The amount is validated before the processor is called.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req struct {
		Price interface{} `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price"})
		return
	}

	amount, err := services.ToMinorUnits(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price"})
		return
	}

	secret, err := h.Payments.CreateIntent(c.Request.Context(), amount)
	if err != nil {
		log.Printf("[%s] CreatePaymentIntent: %v", middleware.RequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "payment processor error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

func (h *Handler) ListPayments(c *gin.Context) {
	page, err := h.Payments.ListIntents(c.Request.Context())
	if err != nil {
		log.Printf("[%s] ListPayments: %v", middleware.RequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "payment processor error"})
		return
	}
	c.JSON(http.StatusOK, page)
}

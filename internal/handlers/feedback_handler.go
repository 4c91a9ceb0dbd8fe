package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateFeedback(c *gin.Context) {
	feedback, ok := bindDocument(c)
	if !ok {
		return
	}
	res, err := h.Feedback.Create(c.Request.Context(), feedback)
	if err != nil {
		storeError(c, "CreateFeedback", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListFeedback(c *gin.Context) {
	feedback, err := h.Feedback.List(c.Request.Context())
	if err != nil {
		storeError(c, "ListFeedback", err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func (h *Handler) ListCampFeedback(c *gin.Context) {
	feedback, err := h.Feedback.ListByCamp(c.Request.Context(), c.Param("campId"))
	if err != nil {
		storeError(c, "ListCampFeedback", err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// ListSlides handles GET /slider.
func (h *Handler) ListSlides(c *gin.Context) {
	slides, err := h.Slider.List(c.Request.Context())
	if err != nil {
		storeError(c, "ListSlides", err)
		return
	}
	c.JSON(http.StatusOK, slides)
}

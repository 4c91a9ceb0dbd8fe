package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medcampconnect/medcamp-api/internal/middleware"
)

const maxUploadBytes = 32 << 20

// UploadImage handles POST /upload by relaying the body to the image host.
func (h *Handler) UploadImage(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes))
	if err != nil {
		log.Printf("[%s] UploadImage: read body: %v", middleware.RequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading image"})
		return
	}

	resp, err := h.Images.Upload(c.Request.Context(), c.GetHeader("Content-Type"), body)
	if err != nil {
		log.Printf("[%s] UploadImage: %v", middleware.RequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading image"})
		return
	}
	c.Data(http.StatusOK, resp.ContentType, resp.Body)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medcampconnect/medcamp-api/internal/middleware"
	"github.com/medcampconnect/medcamp-api/internal/models"
)

// CreateBooking handles POST /bookings. The booked camp's participant_count is
// incremented together with the insert.
func (h *Handler) CreateBooking(c *gin.Context) {
	booking, ok := bindDocument(c)
	if !ok {
		return
	}
	res, err := h.Bookings.Create(c.Request.Context(), booking)
	if err != nil {
		storeError(c, "CreateBooking", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.Bookings.List(c.Request.Context())
	if err != nil {
		storeError(c, "ListBookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListParticipantBookings handles GET /bookings/:email. Any authenticated
// caller may read any participant's bookings.
func (h *Handler) ListParticipantBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		storeError(c, "ListParticipantBookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetBooking(c *gin.Context) {
	booking, err := h.Bookings.Find(c.Request.Context(), c.Param("email"), c.Param("campId"))
	if err != nil {
		storeError(c, "GetBooking", err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	res, err := h.Bookings.Delete(c.Request.Context(), c.Param("email"), c.Param("campId"))
	if err != nil {
		storeError(c, "DeleteBooking", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ParticipantStats handles GET /participant-stats/:email. Stats are computed
// for the token's identity; the path segment is not trusted. A path email that
// differs from the token is not rejected: the caller gets their own stats.
func (h *Handler) ParticipantStats(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return
	}

	bookings, err := h.Bookings.ForParticipant(c.Request.Context(), claims.Email)
	if err != nil {
		storeError(c, "ParticipantStats", err)
		return
	}
	c.JSON(http.StatusOK, models.NewParticipantStats(bookings))
}

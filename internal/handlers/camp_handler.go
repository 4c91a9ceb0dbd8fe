package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCamps handles GET /camps?search=&sort=.
func (h *Handler) ListCamps(c *gin.Context) {
	camps, err := h.Camps.List(c.Request.Context(), c.Query("search"), c.Query("sort"))
	if err != nil {
		storeError(c, "ListCamps", err)
		return
	}
	c.JSON(http.StatusOK, camps)
}

// TopCamps handles GET /sortedCamps.
func (h *Handler) TopCamps(c *gin.Context) {
	camps, err := h.Camps.Top(c.Request.Context())
	if err != nil {
		storeError(c, "TopCamps", err)
		return
	}
	c.JSON(http.StatusOK, camps)
}

func (h *Handler) GetCamp(c *gin.Context) {
	camp, err := h.Camps.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, "GetCamp", err)
		return
	}
	c.JSON(http.StatusOK, camp)
}

func (h *Handler) CreateCamp(c *gin.Context) {
	camp, ok := bindDocument(c)
	if !ok {
		return
	}
	res, err := h.Camps.Create(c.Request.Context(), camp)
	if err != nil {
		storeError(c, "CreateCamp", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateCamp handles PUT /update-camp/:campId; body fields are $set onto the camp.
func (h *Handler) UpdateCamp(c *gin.Context) {
	camp, ok := bindDocument(c)
	if !ok {
		return
	}
	res, err := h.Camps.Update(c.Request.Context(), c.Param("campId"), camp)
	if err != nil {
		storeError(c, "UpdateCamp", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteCamp(c *gin.Context) {
	res, err := h.Camps.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, "DeleteCamp", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// IncrementParticipants handles PATCH /camp/:id. POST /bookings already bumps
// the counter, so this is only for manual corrections.
func (h *Handler) IncrementParticipants(c *gin.Context) {
	res, err := h.Camps.IncrementParticipants(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, "IncrementParticipants", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

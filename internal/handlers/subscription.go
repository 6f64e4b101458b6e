package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/eventpass/internal/service"
)

type dayPassReq struct {
	UserID     string   `json:"user_id" binding:"required"`
	BookingIDs []string `json:"booking_ids" binding:"required"`
}

// POST /v1/subscriptions/day-pass
func (h *Handlers) CreateDayPass(c *gin.Context) {
	var req dayPassReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	subs, err := h.Subs.CreateDayPass(c.Request.Context(), req.UserID, req.BookingIDs)
	if err != nil {
		// documented empty-result shape for day passes
		if errors.Is(err, service.ErrNoDayPassBookings) {
			c.JSON(http.StatusNotFound, gin.H{"error": service.ErrNoDayPassBookings.Message})
			return
		}
		h.respondError(c, "Failed to create day pass due to an unexpected error.", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "subscriptions": subs})
}

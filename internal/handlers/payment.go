package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/eventpass/internal/service"
)

// POST /api/payments/confirm — callback from the payment provider.
func (h *Handlers) ConfirmPayment(c *gin.Context) {
	var cb service.PaymentCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Malformed payment callback"})
		return
	}
	res, err := h.Payments.Confirm(c.Request.Context(), cb)
	if err != nil {
		h.respondError(c, "Failed to confirm payment due to an unexpected error.", err)
		return
	}
	out := gin.H{"success": true, "message": res.Message}
	if res.Ticket != nil {
		out["ticket"] = res.Ticket
	}
	if res.Bookings != nil {
		out["bookings"] = res.Bookings
	}
	c.JSON(http.StatusOK, out)
}

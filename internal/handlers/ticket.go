package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/eventpass/internal/service"
)

// POST /v1/tickets (form-encoded, same fields the registration form submits)
func (h *Handlers) RegisterTicket(c *gin.Context) {
	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing or malformed registration fields"})
		return
	}
	ticketPrice, err := strconv.Atoi(c.PostForm("ticketPrice"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing or malformed registration fields"})
		return
	}
	ticketType, err := strconv.Atoi(c.PostForm("ticketType"))
	if err != nil || ticketType < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing or malformed registration fields"})
		return
	}

	res, err := h.Tickets.Register(c.Request.Context(), service.RegisterTicketInput{
		EventID:      c.PostForm("eventId"),
		Quantity:     quantity,
		TicketPrice:  ticketPrice,
		TicketTypeID: uint(ticketType),
		SecureHash:   c.PostForm("secureHash"),
		FirstName:    c.PostForm("firstName"),
		LastName:     c.PostForm("lastName"),
		Phone:        c.PostForm("phoneNumber"),
		Email:        c.PostForm("email"),
	})
	if err != nil {
		h.respondError(c, "Failed to register ticket due to an unexpected error.", err)
		return
	}
	if res.PaymentURL != "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "paymentUrl": res.PaymentURL})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "ticketUrl": res.TicketURL, "ticketId": res.TicketID})
}

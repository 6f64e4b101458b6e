package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/eventpass/internal/service"
	"github.com/you/eventpass/pkg/logger"
)

type Handlers struct {
	Users    *service.UserSvc
	Events   *service.EventSvc
	Tickets  *service.TicketSvc
	Bookings *service.BookingSvc
	Payments *service.PaymentSvc
	Subs     *service.SubscriptionSvc
	Log      logger.Logger
}

func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.POST("/v1/users", h.CreateUser)
	r.GET("/v1/events/:id", h.GetEvent)
	r.POST("/v1/tickets", h.RegisterTicket)
	r.POST("/v1/bookings", h.CreateBooking)
	r.POST("/v1/subscriptions/day-pass", h.CreateDayPass)
	r.POST("/api/payments/confirm", h.ConfirmPayment)
}

func statusFor(code service.ErrorCode) int {
	switch code {
	case service.CodeValidation, service.CodeIntegrity:
		return http.StatusBadRequest
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeDuplicate:
		return http.StatusConflict
	case service.CodeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps business errors to their message and everything else to
// the operation's generic message, so internals never leak.
func (h *Handlers) respondError(c *gin.Context, generic string, err error) {
	var be *service.Error
	if errors.As(err, &be) {
		c.JSON(statusFor(be.Code), gin.H{"success": false, "message": be.Message})
		return
	}
	h.Log.Error("unexpected failure", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": generic})
}

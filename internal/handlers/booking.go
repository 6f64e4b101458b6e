package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/eventpass/internal/domain"
	"github.com/you/eventpass/internal/service"
)

// POST /v1/bookings (form-encoded; "bookings" is a JSON array of selections)
func (h *Handlers) CreateBooking(c *gin.Context) {
	var selections []domain.BookingSelection
	if err := json.Unmarshal([]byte(c.PostForm("bookings")), &selections); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing or malformed booking fields"})
		return
	}

	couponDiscount := 0
	if v := c.PostForm("couponDiscount"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing or malformed booking fields"})
			return
		}
		couponDiscount = d
	}

	in := service.CreateBookingInput{
		FirstName:      c.PostForm("firstName"),
		LastName:       c.PostForm("lastName"),
		Phone:          c.PostForm("phoneNumber"),
		Email:          c.PostForm("email"),
		CouponID:       c.PostForm("couponId"),
		CouponDiscount: couponDiscount,
		Selections:     selections,
	}
	if v := c.PostForm("age"); v != "" {
		if age, err := strconv.Atoi(v); err == nil {
			in.Age = &age
		}
	}
	if v := c.PostForm("profession"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			in.Profession = &p
		}
	}
	if v := c.PostForm("gender"); v != "" {
		if g, err := strconv.ParseBool(v); err == nil {
			in.Gender = &g
		}
	}

	res, err := h.Bookings.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, "Failed to create booking due to an unexpected error.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "paymentUrl": res.PaymentURL, "bookingIds": res.BookingIDs})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /v1/events/:id
func (h *Handlers) GetEvent(c *gin.Context) {
	ev, err := h.Events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "An unexpected error occurred while fetching the event details", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "event": ev})
}

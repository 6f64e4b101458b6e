package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/eventpass/internal/service"
)

type createUserReq struct {
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name" binding:"required"`
	Email        string  `json:"email" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	SocialHandle *string `json:"social_handle"`
	Profession   *int    `json:"profession"`
	Age          *int    `json:"age"`
	Gender       *bool   `json:"gender"`
}

// POST /v1/users
func (h *Handlers) CreateUser(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	userID, err := h.Users.Create(c.Request.Context(), service.CreateUserInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		SocialHandle: req.SocialHandle,
		Profession:   req.Profession,
		Age:          req.Age,
		Gender:       req.Gender,
	})
	if err != nil {
		h.respondError(c, "Failed to create user due to an unexpected error.", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "userId": userID})
}

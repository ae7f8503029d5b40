package handlers

import (
	"net/http"

	"food-ordering-api/auth"
	"food-ordering-api/middleware"

	"github.com/gin-gonic/gin"
)

// Signup creates a new account and logs it in
func (h *Handler) Signup(c *gin.Context) {
	var req auth.SignupRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sess, err := h.accounts.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"service": h.service,
		"message": "Signup successful",
		"token":   sess.Token,
		"user":    sess.User,
	})
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sess, err := h.accounts.Authenticate(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service": h.service,
		"message": "Login successful",
		"token":   sess.Token,
		"user":    sess.User,
	})
}

// Me returns the authenticated user's profile
func (h *Handler) Me(c *gin.Context) {
	user := middleware.GetUser(c)
	c.JSON(http.StatusOK, gin.H{
		"service": h.service,
		"user":    user.Public(),
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/quizmaster-backend/middleware"
	"github.com/vnkhanh/quizmaster-backend/services"
)

type LoginInput struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type AuthController struct {
	base
	users  *services.Users
	tokens *services.Tokens
}

func NewAuthController(users *services.Users, sessions *services.Sessions, tokens *services.Tokens) *AuthController {
	return &AuthController{base: base{sessions: sessions}, users: users, tokens: tokens}
}

// POST /auth/register
func (h *AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if !bind(c, &input) {
		return
	}
	user, err := h.users.Register(c.Request.Context(), input)
	if err != nil {
		input.Password = ""
		h.fail(c, err, input)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful, you can now log in",
		"user":    user,
	})
}

// POST /auth/login
func (h *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if !bind(c, &input) {
		return
	}
	ctx := c.Request.Context()
	user, err := h.users.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	session, err := h.sessions.Start(ctx, user.ID)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	token, err := h.tokens.Issue(*user, *session)
	if err != nil {
		h.fail(c, err, nil)
		return
	}

	next := "/user/dashboard"
	if user.IsAdmin {
		next = "/admin/dashboard"
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": session.ExpiresAt,
		"next":       next,
		"user":       user,
	})
}

// POST /auth/logout
func (h *AuthController) Logout(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	if err := services.RequireAuthenticated(p); err != nil {
		h.fail(c, err, nil)
		return
	}
	if err := h.sessions.Revoke(c.Request.Context(), p.SessionID); err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out", "login": middleware.LoginPath})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/quizmaster-backend/middleware"
	"github.com/vnkhanh/quizmaster-backend/services"
)

type UserController struct {
	base
	users *services.Users
}

func NewUserController(users *services.Users, sessions *services.Sessions) *UserController {
	return &UserController{base: base{sessions: sessions}, users: users}
}

// GET /admin/users
func (h *UserController) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), middleware.CurrentPrincipal(c))
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// POST /admin/users/:id/delete
func (h *UserController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	purged, err := h.users.Delete(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted", "scores_deleted": purged})
}

package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/quizmaster-backend/middleware"
	"github.com/vnkhanh/quizmaster-backend/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Input any    `json:"input,omitempty"`
}

// base carries what every controller needs to report failures.
type base struct {
	sessions *services.Sessions
}

// fail maps the service error taxonomy onto HTTP. input, when non-nil, is
// echoed back on validation errors so the form can be redisplayed.
func (b base) fail(c *gin.Context, err error, input any) {
	var (
		ve *services.ValidationError
		ne *services.NotFoundError
		ae *services.AuthorizationError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Message, Field: ve.Field, Input: input})
	case errors.As(err, &ne):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: ne.Error()})
	case errors.As(err, &ae):
		if p := middleware.CurrentPrincipal(c); ae.TerminateSession && p != nil {
			if rerr := b.sessions.Revoke(c.Request.Context(), p.SessionID); rerr != nil {
				log.Printf("revoke session %s: %v", p.SessionID, rerr)
			}
		}
		middleware.Deny(c, ae.Reason)
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// idParam parses a positive integer path parameter, answering 400 otherwise.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// bind reads a JSON or form body into dst, answering 400 on malformed input.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/quizmaster-backend/services"
)

// RequireAdmin lets only administrators through. A logged-in non-admin that
// reaches an admin route is logged out.
func RequireAdmin(sessions *services.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentPrincipal(c)
		err := services.RequireAdmin(p)
		if err == nil {
			c.Next()
			return
		}
		if ae, ok := err.(*services.AuthorizationError); ok && ae.TerminateSession {
			log.Printf("non-admin user %d requested %s %s, ending session", p.UserID, c.Request.Method, c.Request.URL.Path)
			if err := sessions.Revoke(c.Request.Context(), p.SessionID); err != nil {
				log.Printf("revoke session %s: %v", p.SessionID, err)
			}
		}
		Deny(c, err.Error())
	}
}

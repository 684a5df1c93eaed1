package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/quizmaster-backend/services"
)

// LoginPath is where unauthenticated or rejected callers are sent.
const LoginPath = "/auth/login"

const principalKey = "principal"

// Deny aborts with 401 and points the client at the login entry point.
func Deny(c *gin.Context, reason string) {
	c.Header("Location", LoginPath)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": reason, "login": LoginPath})
}

// bearerToken reads "Authorization: Bearer <token>", falling back to X-Auth-Token.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		authHeader = c.GetHeader("X-Auth-Token")
	}
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware verifies the bearer token, checks that its session is still
// live and attaches the request principal. The role always comes from the
// user row, never from the token.
func AuthMiddleware(tokens *services.Tokens, sessions *services.Sessions, users *services.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			Deny(c, "missing or malformed Authorization header")
			return
		}
		claims, sid, err := tokens.Parse(tokenString)
		if err != nil {
			Deny(c, err.Error())
			return
		}

		ctx := c.Request.Context()
		session, err := sessions.Active(ctx, sid)
		if err != nil {
			abortOnStoreError(c, err)
			return
		}
		user, err := users.Get(ctx, claims.UserID)
		if err != nil || session.UserID != user.ID {
			if errors.Is(err, services.ErrNotFound) || err == nil {
				Deny(c, "user not found")
				return
			}
			abortOnStoreError(c, err)
			return
		}

		c.Set(principalKey, &services.Principal{
			UserID:    user.ID,
			IsAdmin:   user.IsAdmin,
			SessionID: session.ID,
		})
		c.Next()
	}
}

func abortOnStoreError(c *gin.Context, err error) {
	var ae *services.AuthorizationError
	if errors.As(err, &ae) {
		Deny(c, ae.Reason)
		return
	}
	log.Printf("auth: %v", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// CurrentPrincipal returns the principal set by AuthMiddleware, or nil.
func CurrentPrincipal(c *gin.Context) *services.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*services.Principal)
	return p
}

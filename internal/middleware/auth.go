package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/ada/backend/internal/service"
)

const sessionKey = "session"

// SessionRestorer rebuilds a session from a bearer token
type SessionRestorer interface {
	Restore(ctx context.Context, token string) (*service.Session, error)
}

// AuthMiddleware restores the session named by the bearer token and stores it
// in the request context
func AuthMiddleware(restorer SessionRestorer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "missing authorization header", Code: "UNAUTHORIZED"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid authorization header format", Code: "UNAUTHORIZED"})
			return
		}

		sess, err := restorer.Restore(c.Request.Context(), parts[1])
		if err != nil {
			httpErr := MapErrorToHTTP(err)
			c.AbortWithStatusJSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SetSession stores a session in the context
func SetSession(c *gin.Context, sess *service.Session) {
	c.Set(sessionKey, sess)
}

// GetSession returns the session restored by AuthMiddleware
func GetSession(c *gin.Context) (*service.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*service.Session)
	return sess, ok && sess != nil
}

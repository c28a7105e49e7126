package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/ada/backend/internal/middleware"
	"github.com/pageza/ada/backend/internal/service"
)

// currentSession returns the session set by the auth middleware or answers 401
func currentSession(c *gin.Context) (*service.Session, bool) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.ErrorResponse{Error: "user not authenticated", Code: "UNAUTHORIZED"})
		return nil, false
	}
	return sess, true
}

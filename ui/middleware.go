package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edascope/domain/core"
	"edascope/internal/session"
)

const sessionCookie = "eda_session"

const sessionKey = "session_id"

// sessionMiddleware binds every request to a browser session. A missing or
// empty cookie gets a fresh ID; all dataset state is scoped to it.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || id == "" {
			id = core.NewSessionID().String()
			c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
		}
		c.Set(sessionKey, core.SessionID(id))
		c.Next()
	}
}

// sessionID returns the session bound to the request
func sessionID(c *gin.Context) core.SessionID {
	if v, ok := c.Get(sessionKey); ok {
		if id, ok := v.(core.SessionID); ok {
			return id
		}
	}
	return ""
}

// currentSession fetches the request's session state or responds 404
func (s *Server) currentSession(c *gin.Context) (*session.Session, bool) {
	sess, err := s.store.Get(sessionID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "no dataset loaded - upload a CSV file first",
			"code":  "NOT_FOUND",
		})
		return nil, false
	}
	return sess, true
}

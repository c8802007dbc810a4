package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/dhriti-ai/console-gateway/internal/session"
)

const (
	// ContextSessionKey is the gin context key storing the loaded session.
	ContextSessionKey = "currentSession"
	// ContextSessionIDKey is the gin context key storing the session ID.
	ContextSessionIDKey = "currentSessionID"
)

// Session loads the session referenced by the request cookie into the gin
// context. A missing or dead cookie leaves the context without a session;
// the guard decides what that means per route.
func Session(manager *session.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err == nil && id != "" {
			c.Set(ContextSessionIDKey, id)
			if sess, ok := manager.Session(c.Request.Context(), id); ok {
				c.Set(ContextSessionKey, sess)
			}
		}
		c.Next()
	}
}

// SessionFrom returns the loaded session, or a zero session when absent.
func SessionFrom(c *gin.Context) session.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return session.Session{}
	}
	sess, ok := value.(session.Session)
	if !ok {
		return session.Session{}
	}
	return sess
}

// SessionID returns the request's session cookie value, if any.
func SessionID(c *gin.Context) string {
	value, exists := c.Get(ContextSessionIDKey)
	if !exists {
		return ""
	}
	id, _ := value.(string)
	return id
}

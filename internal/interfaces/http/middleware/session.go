package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionIDHeader carries the anonymous cart session identifier.
// Browsers keep it in local storage; the API never sets cookies.
const SessionIDHeader = "X-Session-ID"

// SessionIDKey is the context key for the session ID
const SessionIDKey = "session_id"

// Session resolves the caller's cart session. A request without a
// session header gets a fresh ID, echoed back so the client can keep it.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionIDHeader)
		if sessionID == "" || len(sessionID) > 128 {
			sessionID = uuid.New().String()
		}
		c.Set(SessionIDKey, sessionID)
		c.Header(SessionIDHeader, sessionID)
		c.Next()
	}
}

// GetSessionID returns the cart session ID from the context
func GetSessionID(c *gin.Context) string {
	if id, exists := c.Get(SessionIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

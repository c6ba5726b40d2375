package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// RequestIDKey is the context key for the request correlation id.
	RequestIDKey ContextKey = "request_id"
	// RequestIDHeader carries the correlation id in both directions.
	RequestIDHeader = "X-Request-ID"
)

// RequestID reuses a valid incoming X-Request-ID or generates a new one, and
// echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(RequestIDHeader))
		if err != nil {
			id = uuid.New()
		}
		c.Set(string(RequestIDKey), id.String())
		c.Header(RequestIDHeader, id.String())
		c.Next()
	}
}

// GetRequestIDFromContext extracts the correlation id set by RequestID.
func GetRequestIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(string(RequestIDKey))
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}

package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key the envelope metadata reads
// the request ID from.
const ContextKeyRequestID = "request_id"

// headerRequestID carries the ID on both the request and the response.
const headerRequestID = "X-Request-ID"

// RequestIDMiddleware tags every request with an ID that shows up in the
// response envelope's metadata and the X-Request-ID header. A caller that
// already sends one keeps it, so retries stay correlated across services.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

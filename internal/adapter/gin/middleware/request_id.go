package middleware

import (
	"github.com/gin-gonic/gin"

	"coin-wallet-service/pkg/logger"
)

// RequestID tags each request with an ID, reusing a well-formed inbound X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(logger.RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = logger.NewRequestID()
		}

		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Header(logger.RequestIDHeader, id)
		c.Next()
	}
}

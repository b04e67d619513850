package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/notevault/notevault/ctxutil"
)

// Trace ensures every request carries a trace id, reusing the one from the
// X-Request-Id header when present. The id is echoed back on the response.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Request-Id")
		if traceID == "" {
			_, traceID = ctxutil.EnsureTraceID(c.Request.Context())
		}

		c.Set(ctxutil.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(ctxutil.SetTraceID(c.Request.Context(), traceID))
		c.Header("X-Request-Id", traceID)

		c.Next()
	}
}

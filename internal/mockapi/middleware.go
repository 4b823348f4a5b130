package mockapi

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// requestID reuses the caller's X-Request-Id or generates one, echoes it on
// the response and logs the request once it completes.
func requestID(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if strings.TrimSpace(rid) == "" {
			rid = uuid.NewString()
		}
		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, rid))
		c.Writer.Header().Set(RequestIDHeader, rid)

		start := time.Now()
		c.Next()

		logger.InfoContext(c.Request.Context(), "mock_request",
			"request_id", rid,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

// RequestID extracts the request id stored by the middleware.
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

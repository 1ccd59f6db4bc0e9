package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/studiobook/internal/httperr"
	"github.com/BruksfildServices01/studiobook/internal/logging"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger assigns a request id, recovers panics and logs one
// line per request. 5xx responses are logged at error level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Writer.Header().Set(HeaderRequestID, reqID)

		defer func() {
			if recovered := recover(); recovered != nil {
				logging.Log.Error("panic",
					zap.String("request_id", reqID),
					zap.String("error", fmt.Sprint(recovered)),
					zap.ByteString("stack", debug.Stack()),
				)
				httperr.Internal(c, "internal_error", "Internal server error")
				c.Abort()
			}

			status := c.Writer.Status()
			fields := []zap.Field{
				zap.String("request_id", reqID),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("client_ip", c.ClientIP()),
				zap.String("user_id", UserID(c)),
			}
			if len(c.Errors) > 0 {
				fields = append(fields, zap.String("errors", c.Errors.String()))
			}

			if status >= http.StatusInternalServerError {
				logging.Log.Error("request", fields...)
				return
			}
			logging.Log.Info("request", fields...)
		}()

		c.Next()
	}
}

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alertwise/alertwise-backend/internal/api/http/response"
	"github.com/alertwise/alertwise-backend/internal/auth"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
	"github.com/alertwise/alertwise-backend/internal/platform/metrics"
)

const HeaderRequestID = "X-Request-Id"

type requestIDKey struct{}

// RequestID reads X-Request-Id or generates one, echoes it on the response
// and stores it on both the gin and the standard context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, rid))
		c.Writer.Header().Set(HeaderRequestID, rid)

		c.Next()
	}
}

// GetRequestID extracts the request ID from a standard context.
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// AccessLog logs every request once after it completes and records its
// latency. 5xx responses are logged with the error that produced them.
func AccessLog(log *logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(status), latency.Seconds())

		kv := []interface{}{
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", latency.String(),
		}
		if subject := auth.SubjectID(c); subject != "" {
			kv = append(kv, "subject_id", subject)
		}

		switch {
		case status >= http.StatusInternalServerError:
			if err, ok := c.Get(response.CtxErrorKey); ok {
				kv = append(kv, "error", err)
			}
			log.Error("request failed", kv...)
		case status >= http.StatusBadRequest:
			log.Warn("request rejected", kv...)
		default:
			log.Info("request served", kv...)
		}
	}
}

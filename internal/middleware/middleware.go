// Package middleware holds the gin middleware stack: panic recovery,
// request logging, request IDs, and caller identity extraction.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peershare/service-rental/internal/response"
)

// SharerUserHeader carries the caller's identity as an opaque numeric id.
// The gateway sets it; this service only parses it.
const SharerUserHeader = "X-Sharer-User-Id"

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
	callerIDKey     = "caller_id"
)

// Recovery recovers from handler panics and returns a generic 500.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					response.ErrorBody{Error: "internal server error"})
			}
		}()
		c.Next()
	}
}

// Logger logs every request with method, path, status and latency.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String(requestIDKey, c.GetString(requestIDKey)),
		)
	}
}

// RequestID assigns each request a UUID, reusing the inbound header if present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// CallerIdentity parses the X-Sharer-User-Id header and aborts with 400 when
// it is absent or not numeric. Routes that do not require an identity must
// not use this middleware.
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerUserHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				response.ErrorBody{Error: "missing " + SharerUserHeader + " header"})
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				response.ErrorBody{Error: "invalid " + SharerUserHeader + " header"})
			return
		}
		c.Set(callerIDKey, id)
		c.Next()
	}
}

// GetCallerID returns the caller id set by CallerIdentity.
func GetCallerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(callerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

package httpapi

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smdydx/bidua-crm/internal/cache"
	"github.com/smdydx/bidua-crm/internal/ratelimit"
)

const (
	requestIDHeader = "X-Request-ID"
	identityHeader  = "X-User-ID"

	requestIDKey = "request_id"
	identityKey  = "auth.user_id"
)

// RequestID propagates the caller's request id or assigns a fresh one.
// The id is echoed back in the response and attached to request logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger emits one structured log line per request after the
// handler chain completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			zap.L().Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			zap.L().Warn("request", fields...)
		default:
			zap.L().Info("request", fields...)
		}
	}
}

// SecurityHeaders sets the standard hardening headers on every response.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'self'")
		c.Next()
	}
}

// Identity reads the X-User-ID header into the request context. Absent
// or malformed headers leave the request anonymous; handlers that
// attribute records treat anonymous callers as having no owner.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(identityHeader); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				c.Set(identityKey, id)
			}
		}
		c.Next()
	}
}

// currentUserID returns the authenticated user id, or nil for anonymous
// requests.
func currentUserID(c *gin.Context) *int64 {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, ok := v.(int64)
	if !ok {
		return nil
	}
	return &id
}

// RateLimit enforces a fixed-window request budget per client address.
// The health endpoint is exempt so probes keep working under load, and
// limiter errors fail open.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		res, err := limiter.Allow(c.Request.Context(), clientKey(c))
		if err != nil {
			zap.S().Warnw("rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.RetryAfter).Unix(), 10))

		if !res.Allowed {
			retry := int(math.Ceil(res.RetryAfter.Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"detail":  fmt.Sprintf("too many requests, try again in %d seconds", retry),
				"success": false,
			})
			return
		}
		c.Next()
	}
}

// clientKey identifies the caller for rate limiting: the first entry of
// X-Forwarded-For when present, otherwise the connection address.
func clientKey(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	return c.ClientIP()
}

// bodyRecorder tees the response body so a successful payload can be
// written to the cache after the handler runs.
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache serves GET responses from the cache. Only 200 responses
// are stored, keyed by method and request URI under the configured
// prefix. X-Cache reports HIT or MISS. The health endpoint always
// reflects the live database, so it is never cached.
func ResponseCache(store cache.Cache, keyPrefix string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		key := keyPrefix + c.Request.Method + ":" + c.Request.URL.RequestURI()
		if body, ok, err := store.Get(c.Request.Context(), key); err == nil && ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rec
		c.Next()

		if rec.Status() == http.StatusOK {
			_ = store.Set(c.Request.Context(), key, rec.body.Bytes(), ttl)
		}
	}
}

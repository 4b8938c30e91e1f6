package middleware

import (
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key carrying the request id; handlers read
// it back when logging server-side failures.
const RequestIDKey = "request_id"

// quietPaths are probe endpoints kept out of the request log.
var quietPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
}

// RequestID honors an inbound X-Request-ID or mints one, and echoes it on
// the response so pipeline runs can be traced across upload, analyze, and
// export calls.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger logs each request with its id, method, path, status, and latency.
// Health probes stay quiet. An analyze call blocked on a model slot shows up
// here as latency, so the line stays terse and greppable.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if quietPaths[c.Request.URL.Path] {
			return
		}

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get(RequestIDKey)
		log.Printf("[%s] %s %s %d %s",
			requestID,
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// Recovery converts a panic into the API's standard error envelope, logging
// the stack under the request id.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				requestID, _ := c.Get(RequestIDKey)
				log.Printf("[%v] panic recovered: %v\n%s", requestID, rec, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   gin.H{"code": "INTERNAL_ERROR", "message": "internal server error"},
				})
			}
		}()
		c.Next()
	}
}

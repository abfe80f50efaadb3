package logger

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	entryKey        = "logger.entry"
	requestIDKey    = "logger.req_id"
)

// Setup configures the standard logrus logger used across the app.
// Local env = pretty console; others = JSON.
func Setup(level, environment string, out io.Writer) *logrus.Logger {
	base := logrus.StandardLogger()
	if out == nil {
		out = os.Stdout
	}
	base.SetOutput(out)

	if environment == "" || environment == "local" {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)
	return base
}

// Middleware attaches a request id and a request-scoped entry to the gin
// context and writes one access log line per request.
func Middleware(base *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Header(requestIDHeader, reqID)

		entry := base.WithFields(logrus.Fields{
			"req_id":    reqID,
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"remote_ip": c.ClientIP(),
		})
		c.Set(requestIDKey, reqID)
		c.Set(entryKey, entry)

		start := time.Now()
		c.Next()

		entry.WithFields(logrus.Fields{
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("request completed")
	}
}

// FromContext returns the request-scoped entry, or a bare entry on the
// standard logger when the middleware did not run.
func FromContext(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(entryKey); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// RequestID returns the id assigned by Middleware, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

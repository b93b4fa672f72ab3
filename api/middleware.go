package api

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestRecorder receives one observation per served request
type RequestRecorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// requestLogger logs each request and reports it to the recorder
func requestLogger(recorder RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		if recorder != nil {
			recorder.RecordHTTPRequest(c.Request.Method, route, status, duration)
		}

		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"route":    route,
			"status":   status,
			"duration": duration.String(),
		}).Debug("Served request")
	}
}

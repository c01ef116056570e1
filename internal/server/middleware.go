package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"niptreport/internal/log"
)

// requestLogger logs one line per request through the structured logger
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			log.FieldMethod, c.Request.Method,
			log.FieldPath, c.Request.URL.Path,
			log.FieldStatus, status,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, c.ClientIP(),
		}
		switch {
		case status >= 500:
			logger.ErrorContext(c.Request.Context(), "request", args...)
		case status >= 400:
			logger.WarnContext(c.Request.Context(), "request", args...)
		default:
			logger.InfoContext(c.Request.Context(), "request", args...)
		}
	}
}

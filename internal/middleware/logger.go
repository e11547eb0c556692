package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snaplink/snaplink/internal/logger"
)

// Logger tags every request with an id and logs its start and outcome.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := logger.NewRequestID()
		c.Header("X-Request-ID", requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		log := logger.FromContext(ctx)

		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}

		log.Info("HTTP request started",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("ip", c.ClientIP()),
		)

		c.Next()

		duration := time.Since(start)

		logLevel := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			logLevel = slog.LevelError
		} else if c.Writer.Status() >= 400 {
			logLevel = slog.LevelWarn
		}

		log.Log(c.Request.Context(), logLevel, "HTTP request completed",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", duration),
			slog.Int("size", c.Writer.Size()),
		)

		for _, err := range c.Errors {
			log.Error("Request error occurred", slog.String("error", err.Error()))
		}
	}
}

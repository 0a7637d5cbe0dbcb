package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"ergasia-marketplace/pkg/logger"
)

// AccessLog writes one structured line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		logger.Log.LogAttrs(c.Request.Context(), level, "HTTP access",
			slog.String("rid", c.GetString(RequestIDKey)),
			slog.String("ip", c.ClientIP()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.Int64("req_bytes", c.Request.ContentLength),
			slog.Int("resp_bytes", c.Writer.Size()),
			slog.String("ua", c.Request.UserAgent()),
		)
	}
}

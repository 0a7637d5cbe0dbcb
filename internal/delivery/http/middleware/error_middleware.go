package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ergasia-marketplace/internal/delivery/http/response"
	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/pkg/apperror"
	"ergasia-marketplace/pkg/logger"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		switch {
		case errors.As(err, &appErr):
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed",
					"rid", c.GetString(RequestIDKey),
					"path", c.FullPath(),
					"error", err,
					"cause", appErr.Err,
				)
			}
			var details interface{}
			if len(appErr.Fields) > 0 {
				details = appErr.Fields
			}
			response.Error(c, appErr.Code, appErr.Message, details)
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "Resource not found", nil)
		default:
			// Internal details stay in the log.
			logger.Log.Error("Internal Server Error",
				"rid", c.GetString(RequestIDKey),
				"path", c.FullPath(),
				"error", err,
			)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}

package middleware

import (
	"errors"

	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		// Never expose internal details to clients
		if appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindStorage {
			logger.Log.Error("Request failed",
				"error", err,
				"kind", appErr.Kind,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", c.GetString(response.RequestIDKey),
			)
		}
		if appErr.Kind == apperror.KindInternal {
			appErr = apperror.New(apperror.KindInternal, "An unexpected error occurred. Please try again later.", nil)
		}

		response.Error(c, appErr)
	}
}

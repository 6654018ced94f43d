package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"profiler-backend/internal/delivery/http/response"
	"profiler-backend/pkg/apperror"
	"profiler-backend/pkg/logger"
)

// ErrorHandler renders the last error pushed with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if appErr, ok := apperror.As(err); ok && appErr.Code < http.StatusInternalServerError {
			if len(appErr.Details) > 0 {
				response.Error(c, appErr.Code, appErr.Details)
				return
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Internal details are logged, never sent.
		logger.Log.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", response.RequestID(c),
			"error", err.Error(),
		)
		internal := apperror.Internal(err)
		response.Error(c, internal.Code, internal.Message)
	}
}

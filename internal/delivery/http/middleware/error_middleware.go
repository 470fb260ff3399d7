package middleware

import (
	"errors"
	"go-devnet-backend/internal/delivery/http/response"
	"go-devnet-backend/pkg/apperror"
	"go-devnet-backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		if appErr.Code >= http.StatusInternalServerError {
			// Internal details stay in the log; the client gets the generic message.
			logger.Log.Error("request failed",
				"request_id", c.GetString("RequestID"),
				"method", c.Request.Method,
				"path", c.FullPath(),
				"error", err,
			)
		}

		if c.Writer.Written() {
			return
		}
		response.Error(c, appErr.Code, appErr.Body())
	}
}

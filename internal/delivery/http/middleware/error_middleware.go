package middleware

import (
	"errors"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/sentry"

	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors collected on the gin context into the wire
// envelope. Anticipated failures (AppError with a 4xx code) pass their
// message through; everything else is reported to the observability sink
// with the acting user attached and surfaced as a generic 500 so internal
// details never leak to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Kind != apperror.KindServerFault {
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		userID := c.GetString(string(domain.KeyUserID))
		cause := err
		if appErr != nil && appErr.Err != nil {
			cause = appErr.Err
		}
		logger.Log.Error("unexpected server fault",
			"error", cause,
			"path", c.FullPath(),
			"user_id", userID,
		)
		sentry.CaptureError(cause, userID)

		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}

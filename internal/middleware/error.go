package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/chefcourse/backend/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

var kindStatus = map[service.ErrorKind]int{
	service.KindValidation:         http.StatusBadRequest,
	service.KindUnauthorized:       http.StatusUnauthorized,
	service.KindForbidden:          http.StatusForbidden,
	service.KindConflict:           http.StatusConflict,
	service.KindNotFound:           http.StatusNotFound,
	service.KindInvalidCredentials: http.StatusUnauthorized,
	service.KindInvalidToken:       http.StatusUnauthorized,
	service.KindUnavailable:        http.StatusServiceUnavailable,
}

// StatusFor maps an error returned by a service to an HTTP status.
func StatusFor(err error) int {
	var serr *service.Error
	if errors.As(err, &serr) {
		if status, ok := kindStatus[serr.Kind]; ok {
			return status
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders the last error a handler attached with c.Error and
// turns panics into a 500. Internal details are logged, never returned.
func ErrorHandler(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.ErrorContext(c.Request.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := StatusFor(err)

		var serr *service.Error
		switch {
		case errors.As(err, &serr):
			resp := ErrorResponse{Message: serr.Message}
			if len(serr.Details) > 1 {
				resp.Errors = serr.Details
			}
			c.JSON(status, resp)
		case status == http.StatusGatewayTimeout:
			log.WarnContext(c.Request.Context(), "request timed out", slog.String("path", c.Request.URL.Path))
			c.JSON(status, ErrorResponse{Message: "Request timed out"})
		default:
			log.ErrorContext(c.Request.Context(), "request failed",
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("error", err.Error()))
			c.JSON(status, ErrorResponse{Message: "Internal Server Error"})
		}
	}
}

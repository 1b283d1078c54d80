package http

import (
	"errors"
	"log/slog"
	"net/http"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps core errors to HTTP status codes.
func statusFor(err error) int {
	var httpErr *echo.HTTPError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidState), errors.Is(err, errs.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, commands.ErrContentGenerationFailed):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler renders every error as ErrorResponse. Server errors are
// logged and their details hidden from the caller.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := statusFor(err)
		message := err.Error()
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		}
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method, "path", c.Path(), "status", code, "error", err)
			if code == http.StatusInternalServerError {
				message = http.StatusText(code)
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, ErrorResponse{Code: code, Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", writeErr)
		}
	}
}

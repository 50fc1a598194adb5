package apperrors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Status maps an error to its HTTP status code
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAccountInactive):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccountLocked):
		return http.StatusLocked
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// envelope mirrors models.Response without importing models
type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type publicError struct {
	Message string `json:"message"`
}

// Respond writes err using the admin envelope. Internal errors are logged
// and replaced by a generic message.
func Respond(c echo.Context, err error) error {
	status := Status(err)
	logInternal(c, status, err)
	return c.JSON(status, envelope{Status: status, Message: Message(err)})
}

// RespondPublic writes err as {"message": ...} for the storefront API
func RespondPublic(c echo.Context, err error) error {
	status := Status(err)
	logInternal(c, status, err)
	return c.JSON(status, publicError{Message: Message(err)})
}

func logInternal(c echo.Context, status int, err error) {
	if status != http.StatusInternalServerError {
		return
	}
	zap.L().Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err),
	)
}

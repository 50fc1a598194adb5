package controllers

import (
	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/labstack/echo/v4"
)

func success(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, models.Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// bindBody decodes the JSON body; a malformed body is a validation failure
func bindBody(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	return nil
}

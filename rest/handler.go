package rest

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"newsroom/utils/errors"
	"newsroom/utils/logger"
)

// RequestValidator plugs go-playground/validator into echo's c.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// errorResponse maps application error codes onto HTTP statuses.
func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch errors.CodeOf(err) {
	case errors.ErrCodeValidation:
		status = http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeConflict:
		status = http.StatusConflict
	case errors.ErrCodeRateLimit:
		status = http.StatusTooManyRequests
	case errors.ErrCodeExternalAPI:
		status = http.StatusBadGateway
	}

	if status >= 500 {
		errors.LogError(logger.WithRequestID(c.Request().Context(), logger.Logger), err, c.Path())
	}

	return c.JSON(status, ErrorResponse{Error: err.Error()})
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	return c.Validate(req)
}

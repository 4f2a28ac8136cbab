package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worklyapp/workly-backend/internal/domain"
	"github.com/worklyapp/workly-backend/internal/logger"
)

type errorBody struct {
	Message string `json:"message"`
}

// respondError maps a domain error onto the HTTP surface. Anything outside
// the taxonomy is logged and hidden behind a generic 500.
func respondError(c echo.Context, err error) error {
	switch {
	case domain.IsNotFound(err):
		return c.JSON(http.StatusNotFound, errorBody{Message: err.Error()})
	case errors.Is(err, domain.ErrShiftAlreadyOpen):
		return c.JSON(http.StatusConflict, errorBody{Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorBody{Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrNoActiveRecord),
		errors.Is(err, domain.ErrShiftEndsBeforeStart),
		errors.Is(err, domain.ErrAlreadyAffiliated),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorBody{Message: err.Error()})
	default:
		logger.Error(c.Request().Context(), "request failed", err)
		return c.JSON(http.StatusInternalServerError, errorBody{Message: "internal server error"})
	}
}

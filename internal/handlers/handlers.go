// Package handlers contains the HTTP layer: echo handlers that bind and
// validate requests, call repositories, and map the error taxonomy onto
// status codes.
package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ripplehq/ripple-backend/internal/apperrors"
	"github.com/rs/zerolog"
)

// mapError converts repository errors to HTTP errors. Store failures are
// logged with context and surface as a generic 500; internals never reach
// the client.
func mapError(log zerolog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, apperrors.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "Conflict")
	case errors.Is(err, apperrors.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	default:
		log.Error().Err(err).Str("op", op).Msg("store operation failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/builderportfolio/portfolio-system/internal/core/domain"
)

// toHTTPError maps domain errors to their HTTP status. Unknown errors pass
// through untouched for the central error handler to log as 500s.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrProjectNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	case errors.Is(err, domain.ErrUserExists):
		return echo.NewHTTPError(http.StatusConflict, "user already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
	}
	return err
}

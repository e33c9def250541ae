package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/builderportfolio/portfolio-system/internal/api/middleware"
	"github.com/builderportfolio/portfolio-system/internal/core/domain"
)

// ctxActor extracts the identity injected by the Auth middleware. Both claims
// must be present and the role must be known, otherwise the request is
// rejected with 401 before any service call.
func ctxActor(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	raw, _ := c.Get(middleware.CtxRole).(string)
	if userID == "" || raw == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, ok := domain.ParseRole(raw)
	if !ok {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "unknown role in token")
	}
	return userID, role, nil
}

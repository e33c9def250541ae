package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/builderportfolio/portfolio-system/internal/core/ports"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me handles GET /v1/me.
//
// @Summary      Get the caller's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.users.FetchUser(userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe handles PATCH /v1/me. Omitted fields are left unchanged.
//
// @Summary      Update the caller's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.users.UpdateProfile(userID, ports.ProfileChanges{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Experience: req.Experience,
		Password:   req.Password,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

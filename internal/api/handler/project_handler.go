package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/builderportfolio/portfolio-system/internal/api/metrics"
	"github.com/builderportfolio/portfolio-system/internal/core/domain"
	"github.com/builderportfolio/portfolio-system/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations. The acting
// user always comes from the token, never from the payload.
type ProjectHandler struct {
	projects ports.ProjectService
	users    ports.UserService
	logger   zerolog.Logger
}

func NewProjectHandler(projects ports.ProjectService, users ports.UserService, logger zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, users: users, logger: logger}
}

// Create handles POST /v1/projects. The caller becomes the project manager.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	managerID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start, end, err := parseSchedule(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	if !end.After(start) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "end_date must be after start_date")
	}
	if err := h.requireBuilder(req.BuilderID); err != nil {
		return err
	}

	project, err := h.projects.CreateProject(ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Client: ports.ClientInput{
			Name:  req.Client.Name,
			Email: req.Client.Email,
			Phone: req.Client.Phone,
		},
		Status:    domain.ProjectStatus(req.Status),
		BuilderID: req.BuilderID,
		ManagerID: managerID,
	})
	if err != nil {
		return toHTTPError(err)
	}

	metrics.ProjectsCreatedTotal.WithLabelValues(string(project.Status)).Inc()
	metrics.StoredProjects.Inc()

	resp := toProjectResponse(project)
	c.Response().Header().Set(echo.HeaderLocation, resp.Links.Self)
	return c.JSON(http.StatusCreated, resp)
}

// List handles GET /v1/projects: the projects linked to the caller in the
// index of the caller's role, in creation order.
//
// @Summary      List the caller's projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listProjectsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	userID, role, err := ctxActor(c)
	if err != nil {
		return err
	}

	projects, err := h.projects.ListProjectsFor(userID, role)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toListResponse(projects))
}

// Get handles GET /v1/projects/:id. Projects the caller is not linked to are
// reported as not found.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  projectResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	userID, role, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}

	project, err := h.projects.FindProject(id)
	if err != nil {
		return toHTTPError(err)
	}
	if !ownedBy(project, userID, role) {
		return toHTTPError(domain.ErrProjectNotFound)
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// UpdateStatus handles PATCH /v1/projects/:id/status. Only the project's
// builder may change its status; any status may follow any other.
//
// @Summary      Change a project's status
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Project ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects/{id}/status [patch]
func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	builderID, _, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "status must be one of: upcoming in_progress completed")
	}

	if !h.projects.UpdateStatus(builderID, id, status) {
		metrics.ProjectStatusUpdatesTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return toHTTPError(domain.ErrForbidden)
	}
	metrics.ProjectStatusUpdatesTotal.WithLabelValues(metrics.ResultApplied).Inc()

	return h.respondWith(c, id)
}

// Update handles PATCH /v1/projects/:id. Only the project's manager may edit
// it; omitted fields are left unchanged.
//
// @Summary      Edit a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Project ID"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects/{id} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	managerID, _, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	changes := ports.ProjectChanges{Name: req.Name, Description: req.Description}
	if req.StartDate != nil {
		t, err := parseDate("start_date", *req.StartDate)
		if err != nil {
			return err
		}
		changes.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := parseDate("end_date", *req.EndDate)
		if err != nil {
			return err
		}
		changes.EndDate = &t
	}
	if req.Client != nil {
		changes.Client = &ports.ClientInput{
			Name:  req.Client.Name,
			Email: req.Client.Email,
			Phone: req.Client.Phone,
		}
	}

	if changes.StartDate != nil || changes.EndDate != nil {
		if err := h.checkSchedule(managerID, id, changes); err != nil {
			return err
		}
	}

	ok, err := h.projects.UpdateDetails(managerID, id, changes)
	if err != nil {
		return toHTTPError(err)
	}
	if !ok {
		return toHTTPError(domain.ErrForbidden)
	}
	return h.respondWith(c, id)
}

// Delete handles DELETE /v1/projects/:id. Only the project's manager may
// delete it.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id   path  int  true  "Project ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	managerID, _, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}

	if !h.projects.DeleteProject(managerID, id) {
		metrics.ProjectDeletionsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return toHTTPError(domain.ErrForbidden)
	}
	metrics.ProjectDeletionsTotal.WithLabelValues(metrics.ResultDeleted).Inc()
	metrics.StoredProjects.Dec()
	return c.NoContent(http.StatusNoContent)
}

// requireBuilder rejects builder IDs that do not name a registered builder.
func (h *ProjectHandler) requireBuilder(builderID string) error {
	user, err := h.users.FetchUser(builderID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "builder_id does not name a registered builder")
		}
		return err
	}
	if user.Role != domain.RoleBuilder {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "builder_id does not name a registered builder")
	}
	return nil
}

// checkSchedule applies the create-time date rule to the schedule a change
// would leave behind. Projects the caller does not manage are left for
// UpdateDetails to refuse.
func (h *ProjectHandler) checkSchedule(managerID string, id int64, changes ports.ProjectChanges) error {
	project, err := h.projects.FindProject(id)
	if err != nil || project.ManagerID != managerID {
		return nil
	}
	start, end := project.StartDate, project.EndDate
	if changes.StartDate != nil {
		start = *changes.StartDate
	}
	if changes.EndDate != nil {
		end = *changes.EndDate
	}
	if !end.After(start) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "end_date must be after start_date")
	}
	return nil
}

func (h *ProjectHandler) respondWith(c echo.Context, id int64) error {
	project, err := h.projects.FindProject(id)
	if err != nil {
		h.logger.Error().Err(err).Int64("project_id", id).Msg("project vanished after update")
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

func ownedBy(p *domain.Project, userID string, role domain.Role) bool {
	switch role {
	case domain.RoleBuilder:
		return p.BuilderID == userID
	case domain.RoleManager:
		return p.ManagerID == userID
	}
	return false
}

func projectID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}
	return id, nil
}

func parseSchedule(start, end string) (time.Time, time.Time, error) {
	s, err := parseDate("start_date", start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := parseDate("end_date", end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s, e, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusUnprocessableEntity, field+" must be a date formatted as "+dateLayout)
	}
	return t, nil
}

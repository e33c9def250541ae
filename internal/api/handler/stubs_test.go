package handler

import (
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/builderportfolio/portfolio-system/internal/api/middleware"
	"github.com/builderportfolio/portfolio-system/internal/core/domain"
	"github.com/builderportfolio/portfolio-system/internal/core/ports"
)

type stubUserService struct {
	registerFn func(in ports.RegisterInput) (*domain.User, error)
	loginFn    func(userID, password string) (string, *domain.User, error)
	fetchFn    func(userID string) (*domain.User, error)
	updateFn   func(userID string, changes ports.ProfileChanges) (*domain.User, error)
}

func (s *stubUserService) Register(in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(in)
}

func (s *stubUserService) Login(userID, password string) (string, *domain.User, error) {
	return s.loginFn(userID, password)
}

func (s *stubUserService) FetchUser(userID string) (*domain.User, error) {
	return s.fetchFn(userID)
}

func (s *stubUserService) UpdateProfile(userID string, changes ports.ProfileChanges) (*domain.User, error) {
	return s.updateFn(userID, changes)
}

type stubProjectService struct {
	createFn        func(in ports.CreateProjectInput) (*domain.Project, error)
	findFn          func(id int64) (*domain.Project, error)
	listFn          func(holderID string, role domain.Role) ([]domain.Project, error)
	updateStatusFn  func(builderID string, id int64, status domain.ProjectStatus) bool
	updateDetailsFn func(managerID string, id int64, changes ports.ProjectChanges) (bool, error)
	deleteFn        func(managerID string, id int64) bool
}

func (s *stubProjectService) CreateProject(in ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(in)
}

func (s *stubProjectService) FindProject(id int64) (*domain.Project, error) {
	return s.findFn(id)
}

func (s *stubProjectService) ListProjectsFor(holderID string, role domain.Role) ([]domain.Project, error) {
	return s.listFn(holderID, role)
}

func (s *stubProjectService) BuilderProjects(builderID string) []domain.Project {
	p, _ := s.listFn(builderID, domain.RoleBuilder)
	return p
}

func (s *stubProjectService) ManagerProjects(managerID string) []domain.Project {
	p, _ := s.listFn(managerID, domain.RoleManager)
	return p
}

func (s *stubProjectService) UpdateStatus(builderID string, id int64, status domain.ProjectStatus) bool {
	return s.updateStatusFn(builderID, id, status)
}

func (s *stubProjectService) UpdateDetails(managerID string, id int64, changes ports.ProjectChanges) (bool, error) {
	return s.updateDetailsFn(managerID, id, changes)
}

func (s *stubProjectService) DeleteProject(managerID string, id int64) bool {
	return s.deleteFn(managerID, id)
}

// request describes a single handler invocation.
type request struct {
	method string
	target string
	body   string
	userID string
	role   string
	id     string
}

// call runs h against req and renders any returned error with Echo's default
// error handler, the way the middleware tests do.
func call(h echo.HandlerFunc, req request) *httptest.ResponseRecorder {
	e := echo.New()
	e.Validator = NewValidator()

	var r = httptest.NewRequest(req.method, req.target, strings.NewReader(req.body))
	if req.body != "" {
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(r, rec)
	if req.userID != "" {
		c.Set(middleware.CtxUserID, req.userID)
	}
	if req.role != "" {
		c.Set(middleware.CtxRole, req.role)
	}
	if req.id != "" {
		c.SetParamNames("id")
		c.SetParamValues(req.id)
	}

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

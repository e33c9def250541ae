package ports

import (
	"time"

	"github.com/builderportfolio/portfolio-system/internal/core/domain"
)

// ClientInput holds the contact details of a project's client.
type ClientInput struct {
	Name  string
	Email string
	Phone string
}

// CreateProjectInput carries all data needed to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Client      ClientInput
	Status      domain.ProjectStatus // empty = upcoming
	BuilderID   string
	ManagerID   string
}

// ProjectChanges lists the editable project fields. Nil fields are left
// untouched. StartDate and EndDate are validated together against the
// resulting schedule.
type ProjectChanges struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Client      *ClientInput
}

// ProjectService coordinates projects across the project repository and the
// builder and manager indices.
type ProjectService interface {
	CreateProject(in CreateProjectInput) (*domain.Project, error)
	FindProject(id int64) (*domain.Project, error)
	ListProjectsFor(holderID string, role domain.Role) ([]domain.Project, error)
	BuilderProjects(builderID string) []domain.Project
	ManagerProjects(managerID string) []domain.Project
	UpdateStatus(actingBuilderID string, projectID int64, status domain.ProjectStatus) bool
	UpdateDetails(actingManagerID string, projectID int64, changes ProjectChanges) (bool, error)
	DeleteProject(actingManagerID string, projectID int64) bool
}

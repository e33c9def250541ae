package ports

import "github.com/builderportfolio/portfolio-system/internal/core/domain"

// ProjectRepository stores full project records keyed by project ID.
type ProjectRepository interface {
	Save(project *domain.Project) error
	FindByID(id int64) (*domain.Project, error)
	// Remove is a no-op when id is unknown.
	Remove(id int64)
	Count() int
	Clear()
}

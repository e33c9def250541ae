package memory

import (
	"fmt"
	"sync"

	"github.com/builderportfolio/portfolio-system/internal/core/domain"
)

type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[int64]domain.Project
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[int64]domain.Project)}
}

// Save upserts the project by ID.
func (r *ProjectRepository) Save(project *domain.Project) error {
	if project == nil {
		return fmt.Errorf("%w: project cannot be nil", domain.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = *project
	return nil
}

func (r *ProjectRepository) FindByID(id int64) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrProjectNotFound, id)
	}
	return &p, nil
}

func (r *ProjectRepository) Remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.projects, id)
}

func (r *ProjectRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects)
}

func (r *ProjectRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = make(map[int64]domain.Project)
}

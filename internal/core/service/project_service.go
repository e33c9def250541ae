package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/builderportfolio/portfolio-system/internal/core/domain"
	"github.com/builderportfolio/portfolio-system/internal/core/ports"
)

// ProjectService keeps the project repository and the builder and manager
// indices in step. Mutations hold mu exclusively and reads share it, so a
// caller going through the service never sees a project that is stored but
// not yet indexed, or the other way round.
type ProjectService struct {
	mu       sync.RWMutex
	ids      ports.IdentityStore
	projects ports.ProjectRepository
	builders ports.RoleIndex
	managers ports.RoleIndex
	logger   zerolog.Logger
}

func NewProjectService(
	ids ports.IdentityStore,
	projects ports.ProjectRepository,
	builders ports.RoleIndex,
	managers ports.RoleIndex,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		ids:      ids,
		projects: projects,
		builders: builders,
		managers: managers,
		logger:   logger,
	}
}

// CreateProject validates the input, assigns identifiers and links the new
// project to its manager and builder. Invalid input fails with
// domain.ErrInvalidArgument before anything is written or any identifier is
// consumed.
func (s *ProjectService) CreateProject(in ports.CreateProjectInput) (*domain.Project, error) {
	client, err := domain.NewClient(in.Client.Name, in.Client.Email, in.Client.Phone)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	project, err := domain.NewProject(in.Name, in.Description, in.StartDate, in.EndDate, client, in.Status, in.BuilderID, in.ManagerID)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project.Client.ID = s.ids.NextID(domain.ScopeClient)
	project.ID = s.ids.NextID(domain.ScopeProject)

	if err := s.projects.Save(project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if err := s.managers.UpsertProject(project.ManagerID, project.ID); err != nil {
		s.logger.Error().Err(err).Int64("project_id", project.ID).Msg("failed to link project to manager")
		return nil, fmt.Errorf("create project: link manager: %w", err)
	}
	if err := s.builders.UpsertProject(project.BuilderID, project.ID); err != nil {
		s.logger.Error().Err(err).Int64("project_id", project.ID).Msg("failed to link project to builder")
		return nil, fmt.Errorf("create project: link builder: %w", err)
	}

	s.logger.Info().
		Int64("project_id", project.ID).
		Str("builder_id", project.BuilderID).
		Str("manager_id", project.ManagerID).
		Str("status", string(project.Status)).
		Msg("project created")

	out := *project
	return &out, nil
}

// FindProject returns the stored project or domain.ErrProjectNotFound.
func (s *ProjectService) FindProject(id int64) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.FindByID(id)
}

// ListProjectsFor resolves the holder's project links in index order.
// Links whose project no longer exists are skipped.
func (s *ProjectService) ListProjectsFor(holderID string, role domain.Role) ([]domain.Project, error) {
	idx, err := s.index(role)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(idx, holderID), nil
}

func (s *ProjectService) BuilderProjects(builderID string) []domain.Project {
	projects, _ := s.ListProjectsFor(builderID, domain.RoleBuilder)
	return projects
}

func (s *ProjectService) ManagerProjects(managerID string) []domain.Project {
	projects, _ := s.ListProjectsFor(managerID, domain.RoleManager)
	return projects
}

// UpdateStatus lets the project's builder move it to any status. It reports
// false, changing nothing, when the project is missing, the actor is not its
// builder, or the status is unknown.
func (s *ProjectService) UpdateStatus(actingBuilderID string, projectID int64, status domain.ProjectStatus) bool {
	log := s.logger.With().Int64("project_id", projectID).Str("builder_id", actingBuilderID).Logger()

	if !status.Valid() {
		log.Warn().Str("status", string(status)).Msg("status update rejected: unknown status")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project, err := s.projects.FindByID(projectID)
	if err != nil {
		log.Warn().Msg("status update rejected: project not found")
		return false
	}
	if project.BuilderID != actingBuilderID {
		log.Warn().Msg("status update rejected: not the project's builder")
		return false
	}

	previous := project.Status
	project.Status = status
	if err := s.projects.Save(project); err != nil {
		log.Error().Err(err).Msg("status update failed")
		return false
	}

	log.Info().Str("from", string(previous)).Str("to", string(status)).Msg("project status updated")
	return true
}

// UpdateDetails applies changes on behalf of the project's manager. It
// reports false when the project is missing or the actor does not manage it,
// and returns domain.ErrInvalidArgument, leaving the project untouched, when
// the changes are invalid.
func (s *ProjectService) UpdateDetails(actingManagerID string, projectID int64, changes ports.ProjectChanges) (bool, error) {
	log := s.logger.With().Int64("project_id", projectID).Str("manager_id", actingManagerID).Logger()

	s.mu.Lock()
	defer s.mu.Unlock()

	project, err := s.projects.FindByID(projectID)
	if err != nil {
		log.Warn().Msg("details update rejected: project not found")
		return false, nil
	}
	if project.ManagerID != actingManagerID {
		log.Warn().Msg("details update rejected: not the project's manager")
		return false, nil
	}

	if changes.Name != nil {
		if *changes.Name == "" {
			return false, fmt.Errorf("update project: %w: project name cannot be empty", domain.ErrInvalidArgument)
		}
		project.Name = *changes.Name
	}
	if changes.Description != nil {
		project.Description = *changes.Description
	}
	if changes.StartDate != nil || changes.EndDate != nil {
		start, end := project.StartDate, project.EndDate
		if changes.StartDate != nil {
			start = *changes.StartDate
		}
		if changes.EndDate != nil {
			end = *changes.EndDate
		}
		if err := project.Reschedule(start, end); err != nil {
			return false, fmt.Errorf("update project: %w", err)
		}
	}
	if changes.Client != nil {
		client, err := domain.NewClient(changes.Client.Name, changes.Client.Email, changes.Client.Phone)
		if err != nil {
			return false, fmt.Errorf("update project: %w", err)
		}
		client.ID = project.Client.ID
		project.Client = client
	}

	if err := s.projects.Save(project); err != nil {
		return false, fmt.Errorf("update project: %w", err)
	}

	log.Info().Msg("project details updated")
	return true, nil
}

// DeleteProject removes a project on behalf of its manager and unlinks it
// from the manager's and the builder's index. It reports false when the
// project is missing or the actor does not manage it.
func (s *ProjectService) DeleteProject(actingManagerID string, projectID int64) bool {
	log := s.logger.With().Int64("project_id", projectID).Str("manager_id", actingManagerID).Logger()

	s.mu.Lock()
	defer s.mu.Unlock()

	project, err := s.projects.FindByID(projectID)
	if err != nil {
		log.Warn().Msg("delete rejected: project not found")
		return false
	}
	if project.ManagerID != actingManagerID {
		log.Warn().Msg("delete rejected: not the project's manager")
		return false
	}

	s.projects.Remove(projectID)
	s.managers.RemoveProject(actingManagerID, projectID)
	if project.BuilderID != "" {
		s.builders.RemoveProject(project.BuilderID, projectID)
	}

	log.Info().Str("builder_id", project.BuilderID).Msg("project deleted")
	return true
}

func (s *ProjectService) index(role domain.Role) (ports.RoleIndex, error) {
	switch role {
	case domain.RoleBuilder:
		return s.builders, nil
	case domain.RoleManager:
		return s.managers, nil
	default:
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidArgument, role)
	}
}

// resolve must be called with mu held.
func (s *ProjectService) resolve(idx ports.RoleIndex, holderID string) []domain.Project {
	ids := idx.ProjectsOf(holderID)
	out := make([]domain.Project, 0, len(ids))
	for _, id := range ids {
		p, err := s.projects.FindByID(id)
		if err != nil {
			if !errors.Is(err, domain.ErrProjectNotFound) {
				s.logger.Error().Err(err).Int64("project_id", id).Msg("failed to resolve project link")
			}
			continue
		}
		out = append(out, *p)
	}
	return out
}

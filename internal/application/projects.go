package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bnema/deck/internal/domain"
)

// GetProjects lists the projects visible to the session. A permission
// denial from the database degrades to an empty list and is not cached.
func (s *Service) GetProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projectList.load(ctx, allProjectsKey, s.projects.List)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			s.logger.Warn("project list denied by row level security, returning empty list", zap.Error(err))
			return []domain.Project{}, nil
		}
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

func (s *Service) GetProject(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	project, err := s.projectByID.load(ctx, string(id), func(ctx context.Context) (domain.Project, error) {
		return s.projects.GetByID(ctx, id)
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("get project %s: %w", id, err)
	}

	return project, nil
}

func (s *Service) CreateProject(ctx context.Context, cmd CreateProjectCommand) (domain.Project, error) {
	now := s.clock.Now().UTC()
	project := domain.Project{
		Name:        strings.TrimSpace(cmd.Name),
		Description: cmd.Description,
		SandboxID:   cmd.SandboxID,
		IsPublic:    cmd.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := project.Validate(); err != nil {
		return domain.Project{}, err
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("create project: %w", err)
	}
	s.projectList.invalidate(allProjectsKey)

	return created, nil
}

func (s *Service) UpdateProject(ctx context.Context, cmd UpdateProjectCommand) (domain.Project, error) {
	current, err := s.projects.GetByID(ctx, cmd.ID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("get project %s: %w", cmd.ID, err)
	}

	project := cmd.apply(current)
	if err := project.Validate(); err != nil {
		return domain.Project{}, err
	}
	project.UpdatedAt = s.clock.Now().UTC()

	updated, err := s.projects.Update(ctx, project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("update project %s: %w", cmd.ID, err)
	}
	s.projectByID.invalidate(string(cmd.ID))
	s.projectList.invalidate(allProjectsKey)

	return updated, nil
}

func (s *Service) DeleteProject(ctx context.Context, id domain.ProjectID) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	s.projectByID.invalidate(string(id))
	s.projectList.invalidate(allProjectsKey)
	s.threadList.invalidate(string(id))
	s.threadList.invalidate(allThreadsKey)

	return nil
}

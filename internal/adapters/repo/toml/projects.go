package toml

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports"
)

type ProjectRepository struct {
	repo *Repository
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

func (p *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := p.repo.read(ctx, func(file *fileSchema, owner string) error {
		projects = make([]domain.Project, 0, len(file.Projects))
		for _, entry := range file.Projects {
			if entry.visibleTo(owner) {
				projects = append(projects, fromProjectSchema(entry))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return projects, nil
}

func (p *ProjectRepository) GetByID(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	var project domain.Project
	err := p.repo.read(ctx, func(file *fileSchema, owner string) error {
		for _, entry := range file.Projects {
			if entry.ID == string(id) && entry.visibleTo(owner) {
				project = fromProjectSchema(entry)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	})

	return project, err
}

func (p *ProjectRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	err := p.repo.update(ctx, func(file *fileSchema, owner string) error {
		project.ID = domain.ProjectID(uuid.NewString())
		project.AccountID = owner
		if project.UpdatedAt.IsZero() {
			project.UpdatedAt = project.CreatedAt
		}
		file.Projects = append(file.Projects, toProjectSchema(project))
		return nil
	})
	if err != nil {
		return domain.Project{}, err
	}

	return project, nil
}

func (p *ProjectRepository) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	var updated domain.Project
	err := p.repo.update(ctx, func(file *fileSchema, owner string) error {
		i, err := ownedProject(file, project.ID, owner)
		if err != nil {
			return err
		}

		current := file.Projects[i]
		current.Name = project.Name
		current.Description = project.Description
		current.SandboxID = string(project.SandboxID)
		current.IsPublic = project.IsPublic
		current.UpdatedAt = formatTime(project.UpdatedAt)
		file.Projects[i] = current
		updated = fromProjectSchema(current)
		return nil
	})

	return updated, err
}

// Delete removes the project with its threads and their messages.
func (p *ProjectRepository) Delete(ctx context.Context, id domain.ProjectID) error {
	return p.repo.update(ctx, func(file *fileSchema, owner string) error {
		i, err := ownedProject(file, id, owner)
		if err != nil {
			return err
		}
		file.Projects = slices.Delete(file.Projects, i, i+1)

		removed := map[string]bool{}
		file.Threads = slices.DeleteFunc(file.Threads, func(t threadSchema) bool {
			if t.ProjectID == string(id) {
				removed[t.ID] = true
				return true
			}
			return false
		})
		file.Messages = slices.DeleteFunc(file.Messages, func(m messageSchema) bool {
			return removed[m.ThreadID]
		})
		return nil
	})
}

// ownedProject finds a project the owner may write. Rows visible but owned
// by someone else are a permission error; invisible rows do not exist.
func ownedProject(file *fileSchema, id domain.ProjectID, owner string) (int, error) {
	for i, entry := range file.Projects {
		if entry.ID != string(id) {
			continue
		}
		if entry.AccountID == owner {
			return i, nil
		}
		if entry.IsPublic {
			return -1, fmt.Errorf("%w: project %s belongs to another account", domain.ErrPermissionDenied, id)
		}
		break
	}

	return -1, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
}

func toProjectSchema(project domain.Project) projectSchema {
	return projectSchema{
		ID:          string(project.ID),
		AccountID:   project.AccountID,
		Name:        project.Name,
		Description: project.Description,
		SandboxID:   string(project.SandboxID),
		IsPublic:    project.IsPublic,
		CreatedAt:   formatTime(project.CreatedAt),
		UpdatedAt:   formatTime(project.UpdatedAt),
	}
}

func fromProjectSchema(entry projectSchema) domain.Project {
	return domain.Project{
		ID:          domain.ProjectID(entry.ID),
		AccountID:   entry.AccountID,
		Name:        entry.Name,
		Description: entry.Description,
		SandboxID:   domain.SandboxID(entry.SandboxID),
		IsPublic:    entry.IsPublic,
		CreatedAt:   parseTime(entry.CreatedAt),
		UpdatedAt:   parseTime(entry.UpdatedAt),
	}
}

package application

import (
	"strings"

	"github.com/bnema/deck/internal/domain"
)

type CreateProjectCommand struct {
	Name        string
	Description string
	SandboxID   domain.SandboxID
	IsPublic    bool
}

type UpdateProjectCommand struct {
	ID          domain.ProjectID
	Name        *string
	Description *string
	SandboxID   *domain.SandboxID
	IsPublic    *bool
}

func (c UpdateProjectCommand) apply(project domain.Project) domain.Project {
	if c.Name != nil {
		project.Name = strings.TrimSpace(*c.Name)
	}
	if c.Description != nil {
		project.Description = *c.Description
	}
	if c.SandboxID != nil {
		project.SandboxID = *c.SandboxID
	}
	if c.IsPublic != nil {
		project.IsPublic = *c.IsPublic
	}

	return project
}

type StartAgentCommand struct {
	ThreadID domain.ThreadID
	Options  domain.StartAgentOptions
}

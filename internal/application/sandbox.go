package application

import (
	"context"
	"fmt"

	"github.com/bnema/deck/internal/domain"
)

// Sandbox file operations are not cached.

func (s *Service) ListSandboxFiles(ctx context.Context, sandboxID domain.SandboxID, path string) ([]domain.SandboxFile, error) {
	if path == "" {
		path = domain.SandboxWorkspaceRoot
	}
	normalized, err := domain.NormalizeSandboxPath(path)
	if err != nil {
		return nil, err
	}

	files, err := s.backend.ListSandboxFiles(ctx, sandboxID, normalized)
	if err != nil {
		return nil, fmt.Errorf("list sandbox %s files at %s: %w", sandboxID, normalized, err)
	}

	return files, nil
}

func (s *Service) GetSandboxFileContent(ctx context.Context, sandboxID domain.SandboxID, path string) (domain.FileContent, error) {
	normalized, err := domain.NormalizeSandboxPath(path)
	if err != nil {
		return domain.FileContent{}, err
	}

	content, err := s.backend.GetSandboxFileContent(ctx, sandboxID, normalized)
	if err != nil {
		return domain.FileContent{}, fmt.Errorf("read sandbox %s file %s: %w", sandboxID, normalized, err)
	}

	return content, nil
}

func (s *Service) CreateSandboxFile(ctx context.Context, sandboxID domain.SandboxID, path string, content []byte) error {
	normalized, err := domain.NormalizeSandboxPath(path)
	if err != nil {
		return err
	}

	if err := s.backend.CreateSandboxFile(ctx, sandboxID, normalized, content); err != nil {
		return fmt.Errorf("write sandbox %s file %s: %w", sandboxID, normalized, err)
	}

	return nil
}

// ProjectSandbox resolves the sandbox attached to a project.
func (s *Service) ProjectSandbox(ctx context.Context, projectID domain.ProjectID) (domain.SandboxID, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	if project.SandboxID == "" {
		return "", fmt.Errorf("project %s has no sandbox", projectID)
	}

	return project.SandboxID, nil
}

package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/deck/internal/domain"
)

// GetThreads lists the threads of projectID, or all visible threads when
// projectID is empty.
func (s *Service) GetThreads(ctx context.Context, projectID domain.ProjectID) ([]domain.Thread, error) {
	threads, err := s.threadList.load(ctx, threadListKey(projectID), func(ctx context.Context) ([]domain.Thread, error) {
		return s.threads.List(ctx, projectID)
	})
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}

	return threads, nil
}

func (s *Service) GetThread(ctx context.Context, id domain.ThreadID) (domain.Thread, error) {
	thread, err := s.threadByID.load(ctx, string(id), func(ctx context.Context) (domain.Thread, error) {
		return s.threads.GetByID(ctx, id)
	})
	if err != nil {
		return domain.Thread{}, fmt.Errorf("get thread %s: %w", id, err)
	}

	return thread, nil
}

// CreateThread adds a thread to projectID and drops the cached thread
// lists it would appear in.
func (s *Service) CreateThread(ctx context.Context, projectID domain.ProjectID) (domain.Thread, error) {
	if strings.TrimSpace(string(projectID)) == "" {
		return domain.Thread{}, fmt.Errorf("project id is required")
	}

	now := s.clock.Now().UTC()
	thread, err := s.threads.Create(ctx, domain.Thread{
		ProjectID: projectID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Thread{}, fmt.Errorf("create thread in project %s: %w", projectID, err)
	}
	s.threadList.invalidate(threadListKey(projectID))
	s.threadList.invalidate(allThreadsKey)

	return thread, nil
}

func threadListKey(projectID domain.ProjectID) string {
	if projectID == "" {
		return allThreadsKey
	}

	return string(projectID)
}

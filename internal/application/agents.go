package application

import (
	"context"
	"fmt"
	"slices"

	"github.com/bnema/deck/internal/domain"
)

func (s *Service) StartAgent(ctx context.Context, cmd StartAgentCommand) (domain.AgentRunID, error) {
	if cmd.ThreadID == "" {
		return "", fmt.Errorf("thread id is required")
	}

	runID, err := s.backend.StartAgent(ctx, cmd.ThreadID, cmd.Options)
	if err != nil {
		return "", fmt.Errorf("start agent on thread %s: %w", cmd.ThreadID, err)
	}
	s.runList.invalidate(string(cmd.ThreadID))

	return runID, nil
}

func (s *Service) StopAgent(ctx context.Context, runID domain.AgentRunID) error {
	if err := s.backend.StopAgent(ctx, runID); err != nil {
		return fmt.Errorf("stop agent run %s: %w", runID, err)
	}
	s.runList.invalidateFunc(func(_ string, runs []domain.AgentRun) bool {
		return slices.ContainsFunc(runs, func(run domain.AgentRun) bool { return run.ID == runID })
	})
	s.runStatus.Forget(string(runID))

	return nil
}

// GetAgentStatus always asks the backend; concurrent lookups of the same
// run share one request.
func (s *Service) GetAgentStatus(ctx context.Context, runID domain.AgentRunID) (domain.AgentRun, error) {
	run, err := s.runStatus.Do(ctx, string(runID), func(ctx context.Context) (domain.AgentRun, error) {
		return s.backend.GetAgentRun(ctx, runID)
	})
	if err != nil {
		return domain.AgentRun{}, fmt.Errorf("get agent run %s: %w", runID, err)
	}

	return run, nil
}

func (s *Service) GetAgentRuns(ctx context.Context, threadID domain.ThreadID) ([]domain.AgentRun, error) {
	runs, err := s.runList.load(ctx, string(threadID), func(ctx context.Context) ([]domain.AgentRun, error) {
		return s.backend.ListAgentRuns(ctx, threadID)
	})
	if err != nil {
		return nil, fmt.Errorf("list agent runs of thread %s: %w", threadID, err)
	}

	return runs, nil
}

// StreamAgent subscribes handlers to the output of a run. The returned
// function unsubscribes.
func (s *Service) StreamAgent(runID domain.AgentRunID, handlers StreamHandlers) func() {
	return s.streams.Subscribe(runID, handlers)
}

func (s *Service) WatchAgent(ctx context.Context, runID domain.AgentRunID) <-chan StreamUpdate {
	return s.streams.Watch(ctx, runID)
}

func (s *Service) runStatusLookup(ctx context.Context, runID domain.AgentRunID) (domain.RunStatus, error) {
	run, err := s.GetAgentStatus(ctx, runID)
	if err != nil {
		return "", err
	}

	return run.Status, nil
}

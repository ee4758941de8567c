package ports

import (
	"context"

	"github.com/bnema/deck/internal/domain"
)

type AgentBackend interface {
	StartAgent(ctx context.Context, threadID domain.ThreadID, opts domain.StartAgentOptions) (domain.AgentRunID, error)
	StopAgent(ctx context.Context, runID domain.AgentRunID) error
	GetAgentRun(ctx context.Context, runID domain.AgentRunID) (domain.AgentRun, error)
	ListAgentRuns(ctx context.Context, threadID domain.ThreadID) ([]domain.AgentRun, error)

	ListSandboxFiles(ctx context.Context, sandboxID domain.SandboxID, path string) ([]domain.SandboxFile, error)
	GetSandboxFileContent(ctx context.Context, sandboxID domain.SandboxID, path string) (domain.FileContent, error)
	CreateSandboxFile(ctx context.Context, sandboxID domain.SandboxID, path string, content []byte) error
}

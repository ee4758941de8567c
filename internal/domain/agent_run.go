package domain

import (
	"strings"
	"time"
)

type AgentRunID string
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusStopped   RunStatus = "stopped"
	RunStatusFailed    RunStatus = "failed"
	RunStatusError     RunStatus = "error"
)

func (s RunStatus) Terminal() bool {
	switch RunStatus(strings.ToLower(string(s))) {
	case RunStatusCompleted, RunStatusStopped, RunStatusFailed, RunStatusError:
		return true
	default:
		return false
	}
}

type AgentRun struct {
	ID          AgentRunID
	ThreadID    ThreadID
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Error       string
}

type StartAgentOptions struct {
	ModelName            string
	EnableThinking       bool
	ReasoningEffort      string
	Stream               bool
	EnableContextManager bool
}

// Session is the authenticated identity used for database row-level
// security and backend bearer auth.
type Session struct {
	AccessToken string
	UserID      string
	ExpiresAt   time.Time
}

package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Projects []projectSchema `toml:"projects"`
	Threads  []threadSchema  `toml:"threads"`
	Messages []messageSchema `toml:"messages"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported database schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type projectSchema struct {
	ID          string `toml:"id"`
	AccountID   string `toml:"account_id"`
	Name        string `toml:"name"`
	Description string `toml:"description,omitempty"`
	SandboxID   string `toml:"sandbox_id,omitempty"`
	IsPublic    bool   `toml:"is_public"`
	CreatedAt   string `toml:"created_at"`
	UpdatedAt   string `toml:"updated_at"`
}

type threadSchema struct {
	ID        string `toml:"id"`
	ProjectID string `toml:"project_id"`
	AccountID string `toml:"account_id"`
	IsPublic  bool   `toml:"is_public"`
	CreatedAt string `toml:"created_at"`
	UpdatedAt string `toml:"updated_at"`
}

// messageSchema keeps content and metadata as JSON text.
type messageSchema struct {
	ID           string `toml:"id"`
	ThreadID     string `toml:"thread_id"`
	Type         string `toml:"type"`
	IsLLMMessage bool   `toml:"is_llm_message"`
	Content      string `toml:"content"`
	Metadata     string `toml:"metadata,omitempty"`
	CreatedAt    string `toml:"created_at"`
}

func (p projectSchema) visibleTo(owner string) bool {
	return p.AccountID == owner || p.IsPublic
}

func (t threadSchema) visibleTo(owner string) bool {
	return t.AccountID == owner || t.IsPublic
}

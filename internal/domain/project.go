package domain

import (
	"fmt"
	"strings"
	"time"
)

type ProjectID string

type Project struct {
	ID          ProjectID
	AccountID   string
	Name        string
	Description string
	SandboxID   SandboxID
	IsPublic    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if len(p.Name) > 255 {
		return fmt.Errorf("project name is longer than 255 characters")
	}

	return nil
}

package domain

import "time"

type ThreadID string

type Thread struct {
	ID        ThreadID
	ProjectID ProjectID
	AccountID string
	IsPublic  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

package application

import (
	"time"

	"github.com/bnema/deck/internal/domain"
)

type AuthStatus struct {
	Authenticated bool
	UserID        string
	ExpiresAt     time.Time
	// Reason explains why Authenticated is false.
	Reason string
}

// ThreadView is a thread with its visible conversation.
type ThreadView struct {
	Thread   domain.Thread
	Messages []domain.Message
}

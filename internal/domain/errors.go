package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrThreadNotFound  = errors.New("thread not found")
	ErrRunNotFound     = errors.New("agent run not found")
	ErrSecretNotFound  = errors.New("secret not found")

	ErrUnauthenticated    = errors.New("not authenticated")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrBackendUnreachable = errors.New("agent backend unreachable")
	ErrStreamLost         = errors.New("agent run stream lost while run is still active")
)

// BackendError is a non-2xx answer from the agent backend.
type BackendError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *BackendError) Error() string {
	status := strings.TrimSpace(e.Status)
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Body == "" {
		return fmt.Sprintf("backend returned %s", status)
	}

	return fmt.Sprintf("backend returned %s: %s", status, e.Body)
}

// Unwrap lets callers match auth failures with errors.Is(err, ErrUnauthenticated).
func (e *BackendError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthenticated
	default:
		return nil
	}
}

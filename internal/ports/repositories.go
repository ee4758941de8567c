package ports

import (
	"context"

	"github.com/bnema/deck/internal/domain"
)

// ProjectRepository, ThreadRepository and MessageRepository are the hosted
// database tables. Implementations scope every call to the session identity.

type ProjectRepository interface {
	List(ctx context.Context) ([]domain.Project, error)
	GetByID(ctx context.Context, id domain.ProjectID) (domain.Project, error)
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	Update(ctx context.Context, project domain.Project) (domain.Project, error)
	Delete(ctx context.Context, id domain.ProjectID) error
}

type ThreadRepository interface {
	// List returns threads of projectID, or every visible thread when projectID is empty.
	List(ctx context.Context, projectID domain.ProjectID) ([]domain.Thread, error)
	GetByID(ctx context.Context, id domain.ThreadID) (domain.Thread, error)
	Create(ctx context.Context, thread domain.Thread) (domain.Thread, error)
}

type MessageRepository interface {
	ListByThread(ctx context.Context, threadID domain.ThreadID) ([]domain.Message, error)
	Create(ctx context.Context, message domain.Message) (domain.Message, error)
}

package toml

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports"
)

type ThreadRepository struct {
	repo *Repository
}

var _ ports.ThreadRepository = (*ThreadRepository)(nil)

func (t *ThreadRepository) List(ctx context.Context, projectID domain.ProjectID) ([]domain.Thread, error) {
	var threads []domain.Thread
	err := t.repo.read(ctx, func(file *fileSchema, owner string) error {
		threads = make([]domain.Thread, 0)
		for _, entry := range file.Threads {
			if projectID != "" && entry.ProjectID != string(projectID) {
				continue
			}
			if entry.visibleTo(owner) {
				threads = append(threads, fromThreadSchema(entry))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return threads, nil
}

func (t *ThreadRepository) GetByID(ctx context.Context, id domain.ThreadID) (domain.Thread, error) {
	var thread domain.Thread
	err := t.repo.read(ctx, func(file *fileSchema, owner string) error {
		for _, entry := range file.Threads {
			if entry.ID == string(id) && entry.visibleTo(owner) {
				thread = fromThreadSchema(entry)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", domain.ErrThreadNotFound, id)
	})

	return thread, err
}

func (t *ThreadRepository) Create(ctx context.Context, thread domain.Thread) (domain.Thread, error) {
	err := t.repo.update(ctx, func(file *fileSchema, owner string) error {
		if _, err := ownedProject(file, thread.ProjectID, owner); err != nil {
			return err
		}

		thread.ID = domain.ThreadID(uuid.NewString())
		thread.AccountID = owner
		if thread.UpdatedAt.IsZero() {
			thread.UpdatedAt = thread.CreatedAt
		}
		file.Threads = append(file.Threads, threadSchema{
			ID:        string(thread.ID),
			ProjectID: string(thread.ProjectID),
			AccountID: thread.AccountID,
			IsPublic:  thread.IsPublic,
			CreatedAt: formatTime(thread.CreatedAt),
			UpdatedAt: formatTime(thread.UpdatedAt),
		})
		return nil
	})
	if err != nil {
		return domain.Thread{}, err
	}

	return thread, nil
}

func fromThreadSchema(entry threadSchema) domain.Thread {
	return domain.Thread{
		ID:        domain.ThreadID(entry.ID),
		ProjectID: domain.ProjectID(entry.ProjectID),
		AccountID: entry.AccountID,
		IsPublic:  entry.IsPublic,
		CreatedAt: parseTime(entry.CreatedAt),
		UpdatedAt: parseTime(entry.UpdatedAt),
	}
}

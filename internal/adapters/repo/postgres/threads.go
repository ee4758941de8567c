package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports"
)

type ThreadRepository struct {
	store *Store
}

var _ ports.ThreadRepository = (*ThreadRepository)(nil)

const threadColumns = `thread_id::text, project_id::text, account_id, is_public, created_at, updated_at`

func scanThread(row pgx.Row) (domain.Thread, error) {
	var thread domain.Thread
	var id, projectID string
	if err := row.Scan(&id, &projectID, &thread.AccountID, &thread.IsPublic, &thread.CreatedAt, &thread.UpdatedAt); err != nil {
		return domain.Thread{}, err
	}
	thread.ID = domain.ThreadID(id)
	thread.ProjectID = domain.ProjectID(projectID)

	return thread, nil
}

func (r *ThreadRepository) List(ctx context.Context, projectID domain.ProjectID) ([]domain.Thread, error) {
	threads := make([]domain.Thread, 0)
	err := r.store.execInTx(ctx, func(ctx context.Context, tx pgx.Tx, _ domain.Session) error {
		query := `SELECT ` + threadColumns + ` FROM threads ORDER BY created_at DESC`
		args := []any{}
		if projectID != "" {
			query = `SELECT ` + threadColumns + ` FROM threads WHERE project_id = $1 ORDER BY created_at DESC`
			args = append(args, string(projectID))
		}

		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query threads: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			thread, err := scanThread(rows)
			if err != nil {
				return fmt.Errorf("scan thread: %w", err)
			}
			threads = append(threads, thread)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return threads, nil
}

func (r *ThreadRepository) GetByID(ctx context.Context, id domain.ThreadID) (domain.Thread, error) {
	if _, err := uuid.Parse(string(id)); err != nil {
		return domain.Thread{}, fmt.Errorf("%w: %s", domain.ErrThreadNotFound, id)
	}

	var thread domain.Thread
	err := r.store.execInTx(ctx, func(ctx context.Context, tx pgx.Tx, _ domain.Session) error {
		var err error
		thread, err = scanThread(tx.QueryRow(ctx, `SELECT `+threadColumns+` FROM threads WHERE thread_id = $1`, string(id)))
		if isNoRows(err) {
			return fmt.Errorf("%w: %s", domain.ErrThreadNotFound, id)
		}
		return err
	})

	return thread, err
}

func (r *ThreadRepository) Create(ctx context.Context, thread domain.Thread) (domain.Thread, error) {
	var created domain.Thread
	err := r.store.execInTx(ctx, func(ctx context.Context, tx pgx.Tx, session domain.Session) error {
		var err error
		created, err = scanThread(tx.QueryRow(ctx, `
			INSERT INTO threads (thread_id, project_id, account_id, is_public, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+threadColumns,
			uuid.NewString(), string(thread.ProjectID), session.UserID, thread.IsPublic, thread.CreatedAt,
		))
		if err != nil {
			return fmt.Errorf("insert thread: %w", err)
		}
		return nil
	})

	return created, err
}

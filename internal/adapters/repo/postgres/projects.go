package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports"
)

type ProjectRepository struct {
	store *Store
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

const projectColumns = `project_id::text, account_id, name, COALESCE(description, ''), COALESCE(sandbox_id, ''), is_public, created_at, updated_at`

func scanProject(row pgx.Row) (domain.Project, error) {
	var project domain.Project
	var id, sandboxID string
	err := row.Scan(&id, &project.AccountID, &project.Name, &project.Description, &sandboxID,
		&project.IsPublic, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return domain.Project{}, err
	}
	project.ID = domain.ProjectID(id)
	project.SandboxID = domain.SandboxID(sandboxID)

	return project, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	projects := make([]domain.Project, 0)
	err := r.store.execInTx(ctx, func(ctx context.Context, tx pgx.Tx, _ domain.Session) error {
		rows, err := tx.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
		if err != nil {
			return fmt.Errorf("query projects: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			project, err := scanProject(rows)
			if err != nil {
				return fmt.Errorf("scan project: %w", err)
			}
			projects = append(projects, project)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	if _, err := uuid.Parse(string(id)); err != nil {
		return domain.Project{}, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	}

	var project domain.Project
	err := r.store.execInTx(ctx, func(ctx context.Context, tx pgx.Tx, _ domain.Session) error {
		var err error
		project, err = scanProject(tx.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE project_id = $1`, string(id)))
		if isNoRows(err) {
			return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
		}
		return err
	})

	return project, err
}

func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	var created domain.Project
	err := r.store.execInTx(ctx, func(ctx context.Context, tx pgx.Tx, session domain.Session) error {
		var err error
		created, err = scanProject(tx.QueryRow(ctx, `
			INSERT INTO projects (project_id, account_id, name, description, sandbox_id, is_public, created_at, updated_at)
			VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $7)
			RETURNING `+projectColumns,
			uuid.NewString(), session.UserID, project.Name, project.Description, string(project.SandboxID),
			project.IsPublic, project.CreatedAt,
		))
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		return nil
	})

	return created, err
}

func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	var updated domain.Project
	err := r.store.execInTx(ctx, func(ctx context.Context, tx pgx.Tx, _ domain.Session) error {
		var err error
		updated, err = scanProject(tx.QueryRow(ctx, `
			UPDATE projects
			SET name = $2, description = NULLIF($3, ''), sandbox_id = NULLIF($4, ''), is_public = $5, updated_at = $6
			WHERE project_id = $1
			RETURNING `+projectColumns,
			string(project.ID), project.Name, project.Description, string(project.SandboxID), project.IsPublic, project.UpdatedAt,
		))
		if isNoRows(err) {
			return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, project.ID)
		}
		if err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		return nil
	})

	return updated, err
}

func (r *ProjectRepository) Delete(ctx context.Context, id domain.ProjectID) error {
	return r.store.execInTx(ctx, func(ctx context.Context, tx pgx.Tx, _ domain.Session) error {
		tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE project_id = $1`, string(id))
		if err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
		}
		return nil
	})
}

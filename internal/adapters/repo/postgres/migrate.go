package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

//go:embed migrations/*.up.sql
var migrationFS embed.FS

// migrationLockID serializes concurrent `deck db migrate` runs.
const migrationLockID = 582_947_113

type migration struct {
	version int
	name    string
	sql     string
}

func loadMigrations() ([]migration, error) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	migrations := make([]migration, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration %q has no version prefix", name)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %q version: %w", name, err)
		}

		data, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return nil, fmt.Errorf("read migration %q: %w", name, err)
		}
		migrations = append(migrations, migration{version: version, name: name, sql: string(data)})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].version < migrations[j].version })

	return migrations, nil
}

// Migrate applies the pending embedded migrations and returns how many ran.
// It needs a role allowed to create tables and policies, so it bypasses the
// per-session claims used by the repositories.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	migrations, err := loadMigrations()
	if err != nil {
		return 0, err
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return 0, mapError(fmt.Errorf("acquire connection: %w", err))
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", migrationLockID); err != nil {
		return 0, mapError(fmt.Errorf("acquire migration lock: %w", err))
	}
	defer func() {
		if _, err := conn.Exec(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1)", migrationLockID); err != nil {
			s.logger.Warn("release migration lock", zap.Error(err))
		}
	}()

	if _, err := conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS deck_schema_migrations (
		version    integer PRIMARY KEY,
		name       text NOT NULL,
		applied_at timestamptz NOT NULL DEFAULT now()
	)`); err != nil {
		return 0, mapError(fmt.Errorf("create migrations table: %w", err))
	}

	var current int
	if err := conn.QueryRow(ctx, "SELECT COALESCE(MAX(version), 0) FROM deck_schema_migrations").Scan(&current); err != nil {
		return 0, mapError(fmt.Errorf("read schema version: %w", err))
	}

	applied := 0
	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := conn.Begin(ctx)
		if err != nil {
			return applied, mapError(fmt.Errorf("begin migration %s: %w", m.name, err))
		}
		if _, err := tx.Exec(ctx, m.sql); err != nil {
			_ = tx.Rollback(ctx)
			return applied, mapError(fmt.Errorf("apply migration %s: %w", m.name, err))
		}
		if _, err := tx.Exec(ctx, "INSERT INTO deck_schema_migrations (version, name) VALUES ($1, $2)", m.version, m.name); err != nil {
			_ = tx.Rollback(ctx)
			return applied, mapError(fmt.Errorf("record migration %s: %w", m.name, err))
		}
		if err := tx.Commit(ctx); err != nil {
			return applied, mapError(fmt.Errorf("commit migration %s: %w", m.name, err))
		}

		s.logger.Info("applied migration", zap.Int("version", m.version), zap.String("name", m.name))
		applied++
	}

	return applied, nil
}

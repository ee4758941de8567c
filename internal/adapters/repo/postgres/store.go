package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports"
)

// Store is the hosted database. Every statement runs in a transaction that
// carries the caller's JWT claims so row level security policies apply.
type Store struct {
	pool     *pgxpool.Pool
	sessions ports.SessionProvider
	logger   *zap.Logger
}

func Open(ctx context.Context, dsn string, sessions ports.SessionProvider, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping database: %w", domain.ErrBackendUnreachable, err)
	}

	return NewStore(pool, sessions, logger), nil
}

func NewStore(pool *pgxpool.Pool, sessions ports.SessionProvider, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{pool: pool, sessions: sessions, logger: logger}
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Projects() *ProjectRepository {
	return &ProjectRepository{store: s}
}

func (s *Store) Threads() *ThreadRepository {
	return &ThreadRepository{store: s}
}

func (s *Store) Messages() *MessageRepository {
	return &MessageRepository{store: s}
}

// execInTx runs fn in a transaction scoped to the session identity. The
// claims are set with set_config so they only live for the transaction.
func (s *Store) execInTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx, session domain.Session) error) error {
	session, err := s.sessions.Session(ctx)
	if err != nil {
		return err
	}

	claims, err := json.Marshal(map[string]string{
		"sub":  session.UserID,
		"role": "authenticated",
	})
	if err != nil {
		return fmt.Errorf("encode jwt claims: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return mapError(fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, "SELECT pg_catalog.set_config('request.jwt.claims', $1, true)", string(claims)); err != nil {
		return mapError(fmt.Errorf("set jwt claims: %w", err))
	}

	if err := fn(ctx, tx, session); err != nil {
		return mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(fmt.Errorf("commit transaction: %w", err))
	}

	return nil
}

func jsonDocument(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}

	return raw
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

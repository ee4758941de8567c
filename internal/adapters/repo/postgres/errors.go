package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bnema/deck/internal/domain"
)

const (
	sqlStateInsufficientPrivilege = "42501"
	sqlStateInvalidAuthorization  = "28000"
	sqlStateInvalidPassword       = "28P01"
)

// mapError turns driver errors into domain errors while keeping the
// original error in the chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateInsufficientPrivilege:
			return fmt.Errorf("%w: %w", domain.ErrPermissionDenied, err)
		case sqlStateInvalidAuthorization, sqlStateInvalidPassword:
			return fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
		}
		return err
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnreachable, err)
	}

	return err
}

package ports

import (
	"context"

	"github.com/bnema/deck/internal/domain"
)

type SessionProvider interface {
	// Session returns domain.ErrUnauthenticated when no valid token is stored.
	Session(ctx context.Context) (domain.Session, error)
}

type SessionStore interface {
	SessionProvider
	Store(ctx context.Context, accessToken string) (domain.Session, error)
	Clear(ctx context.Context) error
}

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports"
)

// AccessTokenKey is where the bearer token lives in the secret store.
const AccessTokenKey = "deck/session/access_token"

// expirySkew treats tokens about to expire as expired so a request does
// not fail halfway.
const expirySkew = 30 * time.Second

// Provider reads the access token from a secret store. Tokens are issued
// and signed by the hosted database; the client only decodes the claims it
// needs and leaves verification to the server.
type Provider struct {
	store  ports.SecretStore
	clock  ports.Clock
	parser *jwt.Parser
}

var _ ports.SessionStore = (*Provider)(nil)

func NewProvider(store ports.SecretStore, clock ports.Clock) *Provider {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Provider{
		store:  store,
		clock:  clock,
		parser: jwt.NewParser(),
	}
}

func (p *Provider) Session(ctx context.Context) (domain.Session, error) {
	token, err := p.store.Get(ctx, AccessTokenKey)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("%w: no access token stored, run `deck auth set-token`: %w", domain.ErrUnauthenticated, err)
	}

	session, err := p.decode(strings.TrimSpace(token))
	if err != nil {
		return domain.Session{}, err
	}
	if !session.ExpiresAt.IsZero() && !p.clock.Now().Add(expirySkew).Before(session.ExpiresAt) {
		return domain.Session{}, fmt.Errorf("%w: access token expired at %s", domain.ErrUnauthenticated, session.ExpiresAt.Format(time.RFC3339))
	}

	return session, nil
}

// Store validates the token shape and saves it.
func (p *Provider) Store(ctx context.Context, accessToken string) (domain.Session, error) {
	accessToken = strings.TrimSpace(accessToken)
	session, err := p.decode(accessToken)
	if err != nil {
		return domain.Session{}, err
	}
	if !session.ExpiresAt.IsZero() && !p.clock.Now().Before(session.ExpiresAt) {
		return domain.Session{}, fmt.Errorf("%w: access token already expired", domain.ErrUnauthenticated)
	}

	if err := p.store.Put(ctx, AccessTokenKey, accessToken); err != nil {
		return domain.Session{}, fmt.Errorf("save access token: %w", err)
	}

	return session, nil
}

func (p *Provider) Clear(ctx context.Context) error {
	if err := p.store.Delete(ctx, AccessTokenKey); err != nil {
		return fmt.Errorf("delete access token: %w", err)
	}

	return nil
}

func (p *Provider) decode(accessToken string) (domain.Session, error) {
	if accessToken == "" {
		return domain.Session{}, fmt.Errorf("%w: access token is empty", domain.ErrUnauthenticated)
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := p.parser.ParseUnverified(accessToken, claims); err != nil {
		return domain.Session{}, fmt.Errorf("%w: parse access token: %w", domain.ErrUnauthenticated, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return domain.Session{}, fmt.Errorf("%w: access token has no subject", domain.ErrUnauthenticated)
	}

	session := domain.Session{
		AccessToken: accessToken,
		UserID:      claims.Subject,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}

	return session, nil
}

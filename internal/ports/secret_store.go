package ports

import "context"

// SecretStore keeps small credentials such as the session access token.
// Get wraps domain.ErrSecretNotFound when key has never been stored.
type SecretStore interface {
	Get(ctx context.Context, key string) (value string, err error)
	Put(ctx context.Context, key string, value string) error
	// Delete succeeds when the key is already absent.
	Delete(ctx context.Context, key string) error
}

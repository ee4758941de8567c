package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/deck/internal/domain"
)

const tokenKey = "deck/session/access_token"

func TestStorePutUsesPassInsertBelowPrefix(t *testing.T) {
	t.Parallel()

	called := false
	store := NewStore(WithPrefix("/work/"))
	store.run = func(ctx context.Context, input string, args ...string) (string, string, error) {
		called = true
		assert.Equal(t, []string{"insert", "-m", "-f", "work/deck/session/access_token"}, args)
		assert.Equal(t, "token\n", input)
		return "", "", nil
	}

	require.NoError(t, store.Put(context.Background(), tokenKey, "token"))
	assert.True(t, called)
}

func TestStoreGetReturnsFirstLine(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.run = func(ctx context.Context, input string, args ...string) (string, string, error) {
		assert.Equal(t, []string{"show", tokenKey}, args)
		assert.Empty(t, input)
		return "token\r\nexpires: tomorrow\n", "", nil
	}

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "token", value)
}

func TestStoreGetMissingEntryReturnsSecretNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.run = func(ctx context.Context, input string, args ...string) (string, string, error) {
		return "", "Error: deck/session/access_token is not in the password store.", errors.New("exit status 1")
	}

	_, err := store.Get(context.Background(), tokenKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.run = func(ctx context.Context, input string, args ...string) (string, string, error) {
		return "", "gpg: decryption failed", errors.New("exit status 2")
	}

	_, err := store.Get(context.Background(), tokenKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, tokenKey)
	assert.ErrorContains(t, err, "decryption failed")
}

func TestStoreDeleteIgnoresMissingEntry(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.run = func(ctx context.Context, input string, args ...string) (string, string, error) {
		assert.Equal(t, []string{"rm", "-f", tokenKey}, args)
		return "", "Error: deck/session/access_token is not in the password store.", errors.New("exit status 1")
	}

	require.NoError(t, store.Delete(context.Background(), tokenKey))
}

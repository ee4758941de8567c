package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/deck/internal/domain"
	"github.com/bnema/deck/internal/ports/mocks"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return token
}

func newTestProvider(t *testing.T) (*Provider, *mocks.MockSecretStore) {
	t.Helper()

	store := mocks.NewMockSecretStore(t)
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(testNow).Maybe()

	return NewProvider(store, clock), store
}

func TestProviderSessionDecodesClaims(t *testing.T) {
	provider, store := newTestProvider(t)
	token := signedToken(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
	})
	store.EXPECT().Get(mock.Anything, AccessTokenKey).Return(token+"\n", nil)

	session, err := provider.Session(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, token, session.AccessToken)
	assert.Equal(t, testNow.Add(time.Hour), session.ExpiresAt)
}

func TestProviderSessionRejectsExpiredToken(t *testing.T) {
	provider, store := newTestProvider(t)
	token := signedToken(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(testNow.Add(10 * time.Second)),
	})
	store.EXPECT().Get(mock.Anything, AccessTokenKey).Return(token, nil)

	_, err := provider.Session(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Contains(t, err.Error(), "expired")
}

func TestProviderSessionWithoutStoredToken(t *testing.T) {
	provider, store := newTestProvider(t)
	store.EXPECT().Get(mock.Anything, AccessTokenKey).Return("", errors.New("file secret not found"))

	_, err := provider.Session(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Contains(t, err.Error(), "deck auth set-token")
}

func TestProviderSessionKeepsContextErrors(t *testing.T) {
	provider, store := newTestProvider(t)
	store.EXPECT().Get(mock.Anything, AccessTokenKey).Return("", context.Canceled)

	_, err := provider.Session(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestProviderStoreValidatesToken(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{name: "empty", token: func(*testing.T) string { return " " }},
		{name: "malformed", token: func(*testing.T) string { return "not-a-jwt" }},
		{name: "missing subject", token: func(t *testing.T) string {
			return signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour))})
		}},
		{name: "expired", token: func(t *testing.T) string {
			return signedToken(t, jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(testNow.Add(-time.Minute))})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, _ := newTestProvider(t)

			_, err := provider.Store(context.Background(), tt.token(t))
			require.ErrorIs(t, err, domain.ErrUnauthenticated)
		})
	}
}

func TestProviderStoreAndClear(t *testing.T) {
	provider, store := newTestProvider(t)
	token := signedToken(t, jwt.RegisteredClaims{Subject: "user-7"})

	store.EXPECT().Put(mock.Anything, AccessTokenKey, token).Return(nil).Once()
	store.EXPECT().Delete(mock.Anything, AccessTokenKey).Return(nil).Once()

	session, err := provider.Store(context.Background(), "  "+token+"  ")
	require.NoError(t, err)
	assert.Equal(t, "user-7", session.UserID)
	assert.True(t, session.ExpiresAt.IsZero())

	require.NoError(t, provider.Clear(context.Background()))
}

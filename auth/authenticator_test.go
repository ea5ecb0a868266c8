package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-board/auth"
)

func TestAuther_Login(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig()

	t.Run("mints a verifiable token on success", func(t *testing.T) {
		identity := testIdentity{
			id:       "member-1",
			username: "pparker",
			roles:    []string{auth.RoleMember},
		}

		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "pparker", "secret1!").Return(identity, nil)

		auther := auth.NewAuthenticator(provider, cfg).WithLogger(testLogger{})

		token, err := auther.Login(ctx, "pparker", "secret1!")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := auther.SessionFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, "pparker", claims.Username())
		assert.True(t, claims.HasRole(auth.RoleMember))

		provider.AssertExpectations(t)
	})

	t.Run("propagates credential mismatch", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "pparker", "wrong").
			Return(nil, auth.ErrMismatchedHashAndPassword)

		auther := auth.NewAuthenticator(provider, cfg).WithLogger(testLogger{})

		token, err := auther.Login(ctx, "pparker", "wrong")
		assert.Empty(t, token)
		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
	})

	t.Run("nil identity without error is rejected", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "ghost", "whatever").Return(nil, nil)

		auther := auth.NewAuthenticator(provider, cfg).WithLogger(testLogger{})

		_, err := auther.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
	})
}

func TestAuther_SessionFromToken(t *testing.T) {
	cfg := newTestConfig()
	provider := &MockIdentityProvider{}
	auther := auth.NewAuthenticator(provider, cfg).WithLogger(testLogger{})

	t.Run("rejects tokens minted under another key", func(t *testing.T) {
		otherCfg := newTestConfig()
		otherCfg.signingKey = "some-other-key"

		other := auth.NewAuthenticator(provider, otherCfg)
		token, err := other.TokenService().Generate(testIdentity{username: "pparker"})
		require.NoError(t, err)

		claims, err := auther.SessionFromToken(token)
		assert.Nil(t, claims)
		assert.True(t, auth.IsMalformedError(err))
	})
}

func TestAuther_WithTokenService(t *testing.T) {
	cfg := newTestConfig()
	provider := &MockIdentityProvider{}

	custom := auth.NewTokenService([]byte("custom-key"), 5, "", testLogger{})
	auther := auth.NewAuthenticator(provider, cfg).WithTokenService(custom)

	assert.Equal(t, custom, auther.TokenService())
}

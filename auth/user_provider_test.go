package auth_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-board/auth"
)

func storedMember(t *testing.T, username, password string) *auth.Member {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	return &auth.Member{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Name:         "Peter Parker",
		Email:        "peter@example.com",
		Roles:        auth.RoleMember,
	}
}

func TestMemberProvider_VerifyIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("returns identity for matching credentials", func(t *testing.T) {
		member := storedMember(t, "pparker", "secret1!")

		store := &MockMemberTracker{}
		store.On("GetByUsername", ctx, "pparker").Return(member, nil)
		store.On("TrackSuccessfulLogin", ctx, member).Return(nil)

		provider := auth.NewMemberProvider(store).WithLogger(testLogger{})

		identity, err := provider.VerifyIdentity(ctx, "pparker", "secret1!")
		require.NoError(t, err)
		assert.Equal(t, "pparker", identity.Username())
		assert.Equal(t, "peter@example.com", identity.Email())
		assert.Equal(t, []string{auth.RoleMember}, identity.Roles())

		store.AssertExpectations(t)
	})

	t.Run("unknown identifier and wrong password are indistinguishable", func(t *testing.T) {
		member := storedMember(t, "pparker", "secret1!")
		notFound := goerrors.New("member not found", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)

		store := &MockMemberTracker{}
		store.On("GetByUsername", ctx, "nobody").Return(nil, notFound)
		store.On("GetByUsername", ctx, "pparker").Return(member, nil)

		provider := auth.NewMemberProvider(store).WithLogger(testLogger{})

		_, errUnknown := provider.VerifyIdentity(ctx, "nobody", "secret1!")
		_, errWrongPwd := provider.VerifyIdentity(ctx, "pparker", "wrong-password")

		assert.ErrorIs(t, errUnknown, auth.ErrMismatchedHashAndPassword)
		assert.ErrorIs(t, errWrongPwd, auth.ErrMismatchedHashAndPassword)
		assert.Equal(t, errUnknown.Error(), errWrongPwd.Error())
	})

	t.Run("nil member without error is treated as mismatch", func(t *testing.T) {
		store := &MockMemberTracker{}
		store.On("GetByUsername", ctx, "ghost").Return(nil, nil)

		provider := auth.NewMemberProvider(store).WithLogger(testLogger{})

		_, err := provider.VerifyIdentity(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
	})

	t.Run("store failures are not collapsed into mismatch", func(t *testing.T) {
		store := &MockMemberTracker{}
		store.On("GetByUsername", ctx, "pparker").Return(nil, errors.New("connection refused"))

		provider := auth.NewMemberProvider(store).WithLogger(testLogger{})

		_, err := provider.VerifyIdentity(ctx, "pparker", "secret1!")
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
	})

	t.Run("login is verified even when tracking fails", func(t *testing.T) {
		member := storedMember(t, "pparker", "secret1!")

		store := &MockMemberTracker{}
		store.On("GetByUsername", ctx, "pparker").Return(member, nil)
		store.On("TrackSuccessfulLogin", ctx, member).Return(errors.New("write failed"))

		provider := auth.NewMemberProvider(store).WithLogger(testLogger{})

		identity, err := provider.VerifyIdentity(ctx, "pparker", "secret1!")
		require.NoError(t, err)
		assert.Equal(t, "pparker", identity.Username())
	})
}

func TestMemberProvider_FindIdentityByIdentifier(t *testing.T) {
	ctx := context.Background()

	t.Run("loads identity without credential check", func(t *testing.T) {
		member := storedMember(t, "pparker", "secret1!")

		store := &MockMemberTracker{}
		store.On("GetByUsername", ctx, "pparker").Return(member, nil)

		provider := auth.NewMemberProvider(store)

		identity, err := provider.FindIdentityByIdentifier(ctx, "pparker")
		require.NoError(t, err)
		assert.Equal(t, member.ID.String(), identity.ID())
	})

	t.Run("nil member yields identity not found", func(t *testing.T) {
		store := &MockMemberTracker{}
		store.On("GetByUsername", ctx, mock.Anything).Return(nil, nil)

		provider := auth.NewMemberProvider(store)

		_, err := provider.FindIdentityByIdentifier(ctx, "nobody")
		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
	})
}

package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// MemberTracker is a store we can use to retrieve members
type MemberTracker interface {
	GetByUsername(ctx context.Context, username string) (*Member, error)
	TrackSuccessfulLogin(ctx context.Context, member *Member) error
}

// MemberProvider verifies credentials against the member store
type MemberProvider struct {
	store  MemberTracker
	logger Logger
}

// NewMemberProvider will create a new MemberProvider
func NewMemberProvider(store MemberTracker) *MemberProvider {
	return &MemberProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *MemberProvider) WithLogger(l Logger) *MemberProvider {
	u.logger = l
	return u
}

// VerifyIdentity will find the member, compare the password hash, and return
// the identity. A missing member and a mismatched password return the same
// error; bcrypt's comparison is constant time so neither path leaks which
// field was wrong.
func (u MemberProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	member, err := u.store.GetByUsername(ctx, identifier)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve member during verification")
	}

	if member == nil {
		return nil, ErrMismatchedHashAndPassword
	}

	if err := ComparePasswordAndHash(password, member.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	// record the authentication event on the account row
	if err := u.store.TrackSuccessfulLogin(ctx, member); err != nil {
		u.logger.Error("failed to track successful login", "error", err)
	}

	return IdentityFromMember(member), nil
}

// FindIdentityByIdentifier loads an identity without verifying a credential
func (u MemberProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	member, err := u.store.GetByUsername(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if member == nil {
		return nil, ErrIdentityNotFound
	}

	return IdentityFromMember(member), nil
}

var _ IdentityProvider = (*MemberProvider)(nil)

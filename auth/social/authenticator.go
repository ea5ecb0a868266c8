package social

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-board/auth"
)

// Members is the slice of the member store the federated flow needs
type Members interface {
	GetByUsername(ctx context.Context, username string) (*auth.Member, error)
	Create(ctx context.Context, member *auth.Member) (*auth.Member, error)
}

// Principal wraps the resolved local account together with the raw provider
// attributes for downstream use
type Principal struct {
	Member     *auth.Member
	Attributes map[string]any
}

// Identity exposes the principal's account as an auth identity
func (p *Principal) Identity() auth.Identity {
	return auth.IdentityFromMember(p.Member)
}

// Authenticator resolves federated identities into local accounts
type Authenticator struct {
	members     Members
	defaultRole string
	logger      auth.Logger
}

// Option configures the social authenticator
type Option func(*Authenticator)

// WithDefaultRole overrides the role assigned to first-time federated accounts
func WithDefaultRole(role string) Option {
	return func(sa *Authenticator) {
		sa.defaultRole = role
	}
}

// WithLogger sets the logger
func WithLogger(l auth.Logger) Option {
	return func(sa *Authenticator) {
		sa.logger = l
	}
}

// NewAuthenticator creates a new federated authenticator
func NewAuthenticator(members Members, opts ...Option) *Authenticator {
	sa := &Authenticator{
		members:     members,
		defaultRole: auth.RoleMember,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(sa)
		}
	}

	return sa
}

// CompleteLogin normalizes the provider payload and upserts the local
// account keyed `{provider}_{providerId}`. First-time users get a hashed
// placeholder password and the default role. Repeat logins reuse the
// stored account as-is: name and email are NOT refreshed from the
// provider, matching the first-login-wins behavior this system has always
// had. Changing that would silently rewrite profiles on every login.
func (sa *Authenticator) CompleteLogin(ctx context.Context, provider string, attributes map[string]any) (*Principal, error) {
	profile, err := Normalize(provider, attributes)
	if err != nil {
		return nil, err
	}

	username := fmt.Sprintf("%s_%s", profile.Provider, profile.ProviderID)

	member, err := sa.members.GetByUsername(ctx, username)
	if err != nil && !goerrors.IsNotFound(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up federated account")
	}

	if member == nil {
		member = &auth.Member{
			Username:     username,
			PasswordHash: auth.RandomPasswordHash(),
			Name:         profile.Name,
			Email:        profile.Email,
			Roles:        sa.defaultRole,
			Provider:     profile.Provider,
			ProviderID:   profile.ProviderID,
		}

		member, err = sa.members.Create(ctx, member)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create federated account")
		}

		if sa.logger != nil {
			sa.logger.Info("registered federated account", "username", username)
		}
	}

	return &Principal{Member: member, Attributes: attributes}, nil
}

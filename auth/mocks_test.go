package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/goliatone/go-board/auth"
)

// testIdentity implements auth.Identity for testing
type testIdentity struct {
	id       string
	username string
	email    string
	roles    []string
}

func (t testIdentity) ID() string       { return t.id }
func (t testIdentity) Username() string { return t.username }
func (t testIdentity) Email() string    { return t.email }
func (t testIdentity) Roles() []string  { return t.roles }

// testLogger discards everything; failure paths under test log on purpose
type testLogger struct{}

func (testLogger) Debug(format string, args ...any) {}
func (testLogger) Info(format string, args ...any)  {}
func (testLogger) Error(format string, args ...any) {}

// testConfig implements auth.Config for testing
type testConfig struct {
	signingKey      string
	tokenExpiration int
	contextKey      string
	tokenLookup     string
	authScheme      string
	issuer          string
}

func newTestConfig() *testConfig {
	return &testConfig{
		signingKey:      "test-signing-key",
		tokenExpiration: 10,
		contextKey:      "user",
		tokenLookup:     "header:Authorization",
		authScheme:      "Bearer",
		issuer:          "test-issuer",
	}
}

func (c *testConfig) GetSigningKey() string   { return c.signingKey }
func (c *testConfig) GetTokenExpiration() int { return c.tokenExpiration }
func (c *testConfig) GetContextKey() string   { return c.contextKey }
func (c *testConfig) GetTokenLookup() string  { return c.tokenLookup }
func (c *testConfig) GetAuthScheme() string   { return c.authScheme }
func (c *testConfig) GetIssuer() string       { return c.issuer }

// MockMemberTracker implements auth.MemberTracker for testing
type MockMemberTracker struct {
	mock.Mock
}

func (m *MockMemberTracker) GetByUsername(ctx context.Context, username string) (*auth.Member, error) {
	args := m.Called(ctx, username)
	if member, ok := args.Get(0).(*auth.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberTracker) TrackSuccessfulLogin(ctx context.Context, member *auth.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// MockIdentityProvider implements auth.IdentityProvider for testing
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	args := m.Called(ctx, identifier, password)
	if identity, ok := args.Get(0).(auth.Identity); ok {
		return identity, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	args := m.Called(ctx, identifier)
	if identity, ok := args.Get(0).(auth.Identity); ok {
		return identity, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAuthenticator implements auth.Authenticator for testing
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, identifier, password string) (string, error) {
	args := m.Called(ctx, identifier, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) SessionFromToken(token string) (auth.AuthClaims, error) {
	args := m.Called(token)
	if claims, ok := args.Get(0).(auth.AuthClaims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

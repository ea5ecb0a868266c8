package auth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-board/auth/jwtware"
	"github.com/goliatone/go-board/rest"
)

// LoginRequest is the credential pair submitted to the login endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate rejects missing fields before any credential check runs
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("please enter your username")),
		validation.Field(&r.Password, validation.Required.Error("please enter your password")),
	)
}

// TokenResponse carries the minted token in the response body, mirroring
// the Authorization header
type TokenResponse struct {
	Authorization string `json:"authorization"`
}

// RouteAuthenticator is the authentication gate: it owns the login route
// and builds the authorization gate middleware for every other route.
type RouteAuthenticator struct {
	auth   Authenticator
	cfg    Config
	Logger Logger
}

// NewHTTPAuthenticator returns a new RouteAuthenticator
func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	return &RouteAuthenticator{
		auth:   auther,
		cfg:    cfg,
		Logger: defLogger{},
	}, nil
}

func (a *RouteAuthenticator) WithLogger(logger Logger) *RouteAuthenticator {
	a.Logger = logger
	return a
}

// LoginPost handles the login request. Credential-format problems return
// 400 before the verifier runs; any authentication failure returns the
// same uniform 401 regardless of cause.
func (a *RouteAuthenticator) LoginPost(c *fiber.Ctx) error {
	payload := LoginRequest{}

	if err := c.BodyParser(&payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload").
			WithCode(goerrors.CodeBadRequest).
			WithTextCode("BAD_CREDENTIAL_FORMAT")
	}

	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithCode(goerrors.CodeBadRequest).
			WithTextCode("BAD_CREDENTIAL_FORMAT")
	}

	token, err := a.auth.Login(c.UserContext(), payload.Username, payload.Password)
	if err != nil {
		a.Logger.Error("Login error", "error", err)

		// store or minting failures are not credential problems; leave
		// them to the boundary's 500 path
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) && richErr.Category == goerrors.CategoryInternal {
			return err
		}

		return ErrAuthenticationFailed
	}

	bearer := a.cfg.GetAuthScheme() + " " + token
	c.Set(fiber.HeaderAuthorization, bearer)

	return rest.OK(c, TokenResponse{Authorization: bearer})
}

// ProtectedPipeline builds the authorization gate for the app. Routes
// matched by filter skip the gate entirely; everything else gets claims
// installed when a valid token is present and passes through anonymous
// otherwise.
func (a *RouteAuthenticator) ProtectedPipeline(validator TokenService, filter func(*fiber.Ctx) bool) fiber.Handler {
	return jwtware.New(jwtware.Config{
		Filter:         filter,
		TokenValidator: tokenValidatorAdapter{validator},
		ContextKey:     a.cfg.GetContextKey(),
		TokenLookup:    a.cfg.GetTokenLookup(),
		AuthScheme:     a.cfg.GetAuthScheme(),
		ErrorHandler:   a.AuthErrorHandler,
		ContextEnricher: func(ctx context.Context, claims jwtware.AuthClaims) context.Context {
			if ac, ok := claims.(AuthClaims); ok {
				return WithClaimsContext(ctx, ac)
			}
			return ctx
		},
	})
}

type tokenValidatorAdapter struct {
	svc TokenService
}

func (t tokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := t.svc.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// AuthErrorHandler translates token verification failures. Expired tokens
// keep a distinguishable message; everything else collapses into a generic
// 401.
func (a *RouteAuthenticator) AuthErrorHandler(c *fiber.Ctx, err error) error {
	if IsTokenExpiredError(err) {
		return ErrTokenExpired
	}
	if IsMalformedError(err) {
		return ErrTokenMalformed
	}
	return goerrors.Wrap(err, goerrors.CategoryAuth, "invalid authentication token").
		WithCode(goerrors.CodeUnauthorized)
}

// RequireRole guards a route group with a role check against the claims the
// authorization gate installed. Anonymous requests are rejected with 401,
// authenticated requests missing the role with 403.
func RequireRole(contextKey, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := jwtware.ClaimsFromContext(c, contextKey)
		if !ok {
			return goerrors.New("authentication required", goerrors.CategoryAuth).
				WithCode(goerrors.CodeUnauthorized).
				WithTextCode("AUTH_REQUIRED")
		}

		if !claims.HasRole(role) {
			return goerrors.New("access denied: required role not present", goerrors.CategoryAuthz).
				WithCode(goerrors.CodeForbidden).
				WithTextCode("ROLE_REQUIRED").
				WithMetadata(map[string]any{"role": role})
		}

		return c.Next()
	}
}

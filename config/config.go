package config

import (
	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
)

// App holds process configuration. The signing key is loaded once at
// startup from the environment and never mutated; it must not appear in
// any shipped build or log line.
type App struct {
	HTTPAddr        string `env:"HTTP_ADDR" envDefault:":9000"`
	DatabaseDSN     string `env:"DATABASE_DSN" envDefault:"file:board.db?cache=shared"`
	SigningKey      string `env:"AUTH_SIGNING_KEY,required"`
	TokenExpiration int    `env:"AUTH_TOKEN_EXPIRATION_MINUTES" envDefault:"10"`
	BcryptCost      int    `env:"AUTH_BCRYPT_COST" envDefault:"10"`
	Issuer          string `env:"AUTH_ISSUER" envDefault:"go-board"`
	ContextKey      string `env:"AUTH_CONTEXT_KEY" envDefault:"user"`
	TokenLookup     string `env:"AUTH_TOKEN_LOOKUP" envDefault:"header:Authorization"`
	AuthScheme      string `env:"AUTH_SCHEME" envDefault:"Bearer"`
}

// Load parses configuration from the environment
func Load() (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load configuration")
	}
	return cfg, nil
}

// The getters below satisfy auth.Config

func (a *App) GetSigningKey() string   { return a.SigningKey }
func (a *App) GetTokenExpiration() int { return a.TokenExpiration }
func (a *App) GetContextKey() string   { return a.ContextKey }
func (a *App) GetTokenLookup() string  { return a.TokenLookup }
func (a *App) GetAuthScheme() string   { return a.AuthScheme }
func (a *App) GetIssuer() string       { return a.Issuer }

package server

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-board/auth"
	"github.com/goliatone/go-board/auth/social"
	"github.com/goliatone/go-board/board"
	"github.com/goliatone/go-board/config"
	"github.com/goliatone/go-board/member"
	"github.com/goliatone/go-board/rest"
)

// Server wires the middleware pipeline and the route table
type Server struct {
	app    *fiber.App
	cfg    *config.App
	logger auth.Logger
}

// New builds the application. The pipeline order is fixed: the app-level
// error handler is the exception boundary, the login route is the
// authentication gate, and the jwtware authorization gate covers every
// other route before any handler that reads the request identity.
func New(cfg *config.App, db *bun.DB, logger auth.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		AppName:      "go-board",
		ErrorHandler: rest.NewErrorHandler(logger),
	})

	if cfg.BcryptCost > 0 {
		auth.DefaultHashCost = cfg.BcryptCost
	}

	memberRepo := member.NewRepository(db)
	memberService := member.NewService(memberRepo).WithLogger(logger)

	provider := auth.NewMemberProvider(memberRepo).WithLogger(logger)
	auther := auth.NewAuthenticator(provider, cfg).WithLogger(logger)

	httpAuth, err := auth.NewHTTPAuthenticator(auther, cfg)
	if err != nil {
		return nil, err
	}
	httpAuth = httpAuth.WithLogger(logger)

	socialAuth := social.NewAuthenticator(memberRepo, social.WithLogger(logger))

	boardRepo := board.NewRepository(db)
	boardService := board.NewService(boardRepo)

	// authentication gate: only the login route
	app.Post("/api/member/login", httpAuth.LoginPost)

	// authorization gate: everything else, with an allow-list filter
	app.Use(httpAuth.ProtectedPipeline(auther.TokenService(), allowListFilter))

	app.Get("/health", func(c *fiber.Ctx) error {
		return rest.OK(c, fiber.Map{"status": "up"})
	})

	// canonical role-gated route
	app.Get("/test", auth.RequireRole(cfg.GetContextKey(), auth.RoleMember), func(c *fiber.Ctx) error {
		claims, _ := auth.GetClaims(c.UserContext())
		return rest.OK(c, fiber.Map{"username": claims.Username(), "roles": claims.Roles()})
	})

	memberGroup := app.Group("/api/member")
	member.NewController(memberService).RegisterRoutes(memberGroup)

	boardGroup := app.Group("/api/board")
	board.NewController(boardService).RegisterRoutes(boardGroup)

	oauth := &oauthController{
		social: socialAuth,
		tokens: auther.TokenService(),
		cfg:    cfg,
	}
	app.Post("/api/oauth/callback/:provider", oauth.Callback)

	return &Server{app: app, cfg: cfg, logger: logger}, nil
}

// App exposes the underlying fiber app, mostly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.HTTPAddr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// allowListFilter skips the authorization gate for public routes: login,
// registration, health, and federated callbacks. Public board reads still
// pass through the gate so authenticated readers get their identity
// installed; the gate lets anonymous readers continue untouched.
func allowListFilter(c *fiber.Ctx) bool {
	path := c.Path()

	switch path {
	case "/api/member/login", "/api/member/join", "/health":
		return true
	}

	return strings.HasPrefix(path, "/api/oauth/callback/")
}

// oauthController handles the federated login callback: the hosting OAuth
// client machinery hands over the provider name plus the raw user-info
// attributes, and identity resolution plus minting follows the same path
// as direct login.
type oauthController struct {
	social *social.Authenticator
	tokens auth.TokenService
	cfg    *config.App
}

func (o *oauthController) Callback(c *fiber.Ctx) error {
	attributes := map[string]any{}
	if err := c.BodyParser(&attributes); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid provider payload").
			WithCode(goerrors.CodeBadRequest)
	}

	principal, err := o.social.CompleteLogin(c.UserContext(), c.Params("provider"), attributes)
	if err != nil {
		return err
	}

	token, err := o.tokens.Generate(principal.Identity())
	if err != nil {
		return err
	}

	bearer := o.cfg.GetAuthScheme() + " " + token
	c.Set(fiber.HeaderAuthorization, bearer)

	return rest.OK(c, auth.TokenResponse{Authorization: bearer})
}

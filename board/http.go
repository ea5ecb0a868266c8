package board

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-board/auth"
	"github.com/goliatone/go-board/rest"
)

// Controller exposes board operations over HTTP
type Controller struct {
	service *Service
}

// NewController creates a new controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// RegisterRoutes mounts the board routes under the given router
func (ct *Controller) RegisterRoutes(app fiber.Router) {
	app.Get("/", ct.List)
	app.Get("/:id", ct.Find)
	app.Post("/", ct.Create)
	app.Put("/:id", ct.Update)
	app.Delete("/:id", ct.Delete)
}

// List returns one page of posts
func (ct *Controller) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	size := c.QueryInt("size", 20)

	result, err := ct.service.List(c.UserContext(), page, size)
	if err != nil {
		return err
	}

	return rest.OK(c, result)
}

// Find returns one post
func (ct *Controller) Find(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	b, err := ct.service.Find(c.UserContext(), id)
	if err != nil {
		return err
	}

	return rest.OK(c, b)
}

// Create stores a new post, attributed to the authenticated identity or
// anonymous
func (ct *Controller) Create(c *fiber.Ctx) error {
	req := Request{}
	if err := c.BodyParser(&req); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid board payload").
			WithCode(goerrors.CodeBadRequest)
	}

	b, err := ct.service.Create(c.UserContext(), req, writerFromContext(c))
	if err != nil {
		return err
	}

	return rest.OK(c, b)
}

// Update edits a post
func (ct *Controller) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	req := Request{}
	if err := c.BodyParser(&req); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid board payload").
			WithCode(goerrors.CodeBadRequest)
	}

	b, err := ct.service.Update(c.UserContext(), req, writerFromContext(c), id)
	if err != nil {
		return err
	}

	return rest.OK(c, b)
}

// Delete soft-removes a post
func (ct *Controller) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	req := DeleteRequest{}
	if err := c.BodyParser(&req); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid board payload").
			WithCode(goerrors.CodeBadRequest)
	}

	b, err := ct.service.Delete(c.UserContext(), req, writerFromContext(c), id)
	if err != nil {
		return err
	}

	return rest.OK(c, b)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, goerrors.New("invalid board id", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}
	return id, nil
}

func writerFromContext(c *fiber.Ctx) string {
	claims, ok := auth.GetClaims(c.UserContext())
	if !ok {
		return AnonymousWriter
	}
	return claims.Username()
}

package member

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-board/rest"
)

// Controller exposes member operations over HTTP
type Controller struct {
	service *Service
}

// NewController creates a new controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// RegisterRoutes mounts the member routes under the given router
func (ct *Controller) RegisterRoutes(app fiber.Router) {
	app.Post("/join", ct.Join)
	app.Get("/exists/:username", ct.Exists)
	app.Get("/:username", ct.Find)
	app.Put("/", ct.Update)
	app.Delete("/:username", ct.Remove)
}

// Join handles account registration
func (ct *Controller) Join(c *fiber.Ctx) error {
	req := RegisterRequest{}
	if err := c.BodyParser(&req); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload").
			WithCode(goerrors.CodeBadRequest)
	}

	m, err := ct.service.Register(c.UserContext(), req)
	if err != nil {
		return err
	}

	return rest.OK(c, m)
}

// Exists reports username availability
func (ct *Controller) Exists(c *fiber.Ctx) error {
	taken, err := ct.service.IsUsernameTaken(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}

	return rest.OK(c, fiber.Map{"exists": taken})
}

// Find returns a member by username
func (ct *Controller) Find(c *fiber.Ctx) error {
	m, err := ct.service.Find(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}

	return rest.OK(c, m)
}

// Update changes a member's password
func (ct *Controller) Update(c *fiber.Ctx) error {
	req := UpdateRequest{}
	if err := c.BodyParser(&req); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid update payload").
			WithCode(goerrors.CodeBadRequest)
	}

	m, err := ct.service.UpdatePassword(c.UserContext(), req)
	if err != nil {
		return err
	}

	return rest.OK(c, m)
}

// Remove soft-deletes a member
func (ct *Controller) Remove(c *fiber.Ctx) error {
	m, err := ct.service.Remove(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}

	return rest.OK(c, m)
}

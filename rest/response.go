package rest

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the error half of the response envelope
type ErrorBody struct {
	Message string `json:"message"`
}

// CommonResponse is the uniform envelope every endpoint answers with:
// `{status, response, error}` where exactly one of response/error is set.
type CommonResponse struct {
	Status   int        `json:"status"`
	Response any        `json:"response"`
	Error    *ErrorBody `json:"error"`
}

// OK writes a 200 envelope with the given payload
func OK(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusOK).JSON(CommonResponse{
		Status:   fiber.StatusOK,
		Response: payload,
	})
}

// Fail writes an error envelope with the given status and message
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(CommonResponse{
		Status: status,
		Error:  &ErrorBody{Message: message},
	})
}

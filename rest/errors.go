package rest

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) { fmt.Printf("[ERR] REST "+format+"\n", args...) }
func (d defLogger) Info(format string, args ...any)  { fmt.Printf("[INF] REST "+format+"\n", args...) }
func (d defLogger) Debug(format string, args ...any) { fmt.Printf("[DBG] REST "+format+"\n", args...) }

// NewErrorHandler builds the outermost exception boundary. Categorized
// errors render their mapped status, anything unknown becomes a generic
// 500 envelope. Nothing escapes the boundary.
func NewErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			status := richErr.Code
			if status == 0 {
				status = fiber.StatusInternalServerError
			}

			logger.Info(
				"request error",
				"error", richErr.Message,
				"category", richErr.Category,
				"text_code", richErr.TextCode,
				"details", print.MaybePrettyJSON(richErr.Metadata),
			)

			return Fail(c, status, richErr.Message)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return Fail(c, fiberErr.Code, fiberErr.Message)
		}

		logger.Error("unexpected error", "error", err.Error())
		return Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}

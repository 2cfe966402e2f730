package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping the controllers into the
// standard response envelope. fiber.Error codes are preserved; everything
// else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"
		if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

package apperror

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// statusWord maps an HTTP status code to the response envelope status:
// "fail" for client errors, "error" for everything unexpected.
func statusWord(code int) string {
	if code >= 400 && code < 500 {
		return "fail"
	}
	return "error"
}

// Handler returns the centralized fiber error handler. All handler errors
// funnel through here and are rendered as the standard envelope. Operational
// errors surface their own message; anything else is logged in full and, in
// production, replaced with a generic message.
func Handler(env string) fiber.ErrorHandler {
	development := env == "development"

	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Something went wrong"

		var appErr *Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			code = appErr.Code
			message = appErr.Message
			if appErr.Err != nil {
				log.Printf("operational error: %s: %v", appErr.Message, appErr.Err)
			}
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		default:
			log.Printf("unexpected error: %v", err)
			if development {
				message = err.Error()
			}
		}

		return c.Status(code).JSON(fiber.Map{
			"status":  statusWord(code),
			"message": message,
		})
	}
}

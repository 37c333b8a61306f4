package middleware

import (
	"errors"
	"log"

	"wtwr/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the single terminal error renderer, installed as the Fiber
// app's ErrorHandler. Taxonomy errors render their status and message; the
// 500 class and anything unclassified render the fixed generic message with
// the detail logged server-side only.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if appErr := apperrors.From(err); appErr != nil {
		if appErr.Status == fiber.StatusInternalServerError {
			log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), appErr)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": apperrors.ServerErrorMessage,
			})
		}
		return c.Status(appErr.Status).JSON(fiber.Map{
			"message": appErr.Message,
		})
	}

	// Fiber's own errors (method not allowed, body too large) keep their
	// status; their messages are safe to forward.
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"message": fiberErr.Message,
		})
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": apperrors.ServerErrorMessage,
	})
}

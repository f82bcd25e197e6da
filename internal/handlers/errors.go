package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gudang/internal/apperrors"
)

// statusForError maps an error kind to an HTTP status. Handlers branch on
// the structured kind, never on message substrings.
func statusForError(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindAuthentication:
		return fiber.StatusUnauthorized
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// errorResponse renders an error without leaking internals: unexpected
// failures get a generic message, expected kinds keep theirs.
func errorResponse(c *fiber.Ctx, message string, err error) error {
	status := statusForError(err)
	detail := err.Error()
	if status == fiber.StatusInternalServerError {
		detail = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   detail,
	})
}

package serverutils

import (
	"errors"

	"notes-repository-be/internal/catalog"
	"notes-repository-be/internal/ingestion"
	"notes-repository-be/internal/session"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	var validationErr *ValidationError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.Is(err, session.ErrNoSession),
		errors.Is(err, session.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, session.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, ingestion.ErrIncomplete),
		errors.Is(err, ingestion.ErrInvalidImage),
		errors.Is(err, ingestion.ErrSubjectNotFound),
		errors.Is(err, ingestion.ErrEmptySubjectName):
		return fiber.StatusBadRequest
	case errors.Is(err, catalog.ErrNoteNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware turns errors returned by downstream handlers into the
// standard response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		message := err.Error()
		if code == fiber.StatusInternalServerError {
			message = "Internal server error: " + message
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

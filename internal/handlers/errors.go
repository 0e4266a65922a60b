package handlers

import (
	"errors"
	"log"
	"time"

	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StandardError is the plain error payload returned for not-found and
// database failures.
type StandardError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// ValidationErrorResponse extends StandardError with the ordered list of
// field-level failures.
type ValidationErrorResponse struct {
	StandardError
	Errors []services.FieldMessage `json:"errors"`
}

// respondError translates a service-layer failure into its HTTP payload:
// NotFound -> 404, DatabaseError -> 400, ValidationError -> 422. Anything
// unclassified becomes a 500 so it can never escape unstructured.
func respondError(c *fiber.Ctx, err error) error {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(newStandardError(c, fiber.StatusNotFound, "Resource not found", notFound.Message))
	}

	var dbErr *services.DatabaseError
	if errors.As(err, &dbErr) {
		return c.Status(fiber.StatusBadRequest).JSON(newStandardError(c, fiber.StatusBadRequest, "Database exception", dbErr.Message))
	}

	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationErrorResponse{
			StandardError: newStandardError(c, fiber.StatusUnprocessableEntity, "Validation exception", "Invalid data"),
			Errors:        validationErr.Errors,
		})
	}

	log.Printf("Unhandled error on %s: %v", c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(newStandardError(c, fiber.StatusInternalServerError, "Internal server error", "Unexpected error"))
}

func newStandardError(c *fiber.Ctx, status int, label, message string) StandardError {
	return StandardError{
		Timestamp: time.Now(),
		Status:    status,
		Error:     label,
		Message:   message,
		Path:      c.Path(),
	}
}

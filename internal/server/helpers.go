package server

import (
	"connectsphere/internal/models"

	"github.com/gofiber/fiber/v2"
)

// statusForCode maps an application error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeQuota:
		return fiber.StatusTooManyRequests
	case models.CodeConstraint:
		return fiber.StatusUnprocessableEntity
	case models.CodeWindowClosed:
		return fiber.StatusForbidden
	case models.CodeMismatch:
		return fiber.StatusBadRequest
	case models.CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError writes the HTTP response for an error returned by a
// service call.
func respondServiceError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*models.AppError); ok {
		return models.RespondWithError(c, statusForCode(appErr.Code), appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

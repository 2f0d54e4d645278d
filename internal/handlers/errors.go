package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"quote-service/internal/models"
	"quote-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrValidation):
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("VALIDATION_FAILED", err.Error()))
	case errors.Is(err, models.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return c.Status(http.StatusServiceUnavailable).JSON(utils.CreateErrorResponse("UPSTREAM_UNAVAILABLE", "Upstream service unavailable"))
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("INTERNAL_ERROR", "Internal server error"))
	}
}

func respondValidation(c fiber.Ctx, errs []utils.ValidationError) error {
	return c.Status(http.StatusBadRequest).JSON(utils.CreateValidationErrorResponse(utils.JoinValidationErrors(errs), errs))
}

func respondInvalidBody(c fiber.Ctx, err error) error {
	slog.Error("error parsing request", "path", c.Path(), "error", err)
	return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
}

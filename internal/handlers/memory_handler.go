package handlers

import (
	"net/http"

	"quote-service/internal/models"
	"quote-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type MemoryHandler struct {
	memoryService *services.MemoryContextService
}

func NewMemoryHandler(memoryService *services.MemoryContextService) *MemoryHandler {
	return &MemoryHandler{memoryService: memoryService}
}

func (h *MemoryHandler) Register(app *fiber.App) {
	app.Get("/api/zep-context", h.GetContext)
	app.Post("/api/zep-context", h.Remember)
}

// GetContext always answers 200 with a well-formed payload.
func (h *MemoryHandler) GetContext(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.memoryService.Context(c.Context(), c.Query("userId")))
}

func (h *MemoryHandler) Remember(c fiber.Ctx) error {
	var req models.RememberRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c, err)
	}
	if errs := req.Validate(); len(errs) > 0 {
		return respondValidation(c, errs)
	}
	return c.Status(http.StatusOK).JSON(h.memoryService.Remember(c.Context(), req))
}

package handlers

import (
	"net/http"

	"quote-service/internal/models"
	"quote-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type QuoteHandler struct {
	quoteService *services.QuoteService
}

func NewQuoteHandler(quoteService *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

func (h *QuoteHandler) Register(app *fiber.App) {
	app.Post("/api/quote", h.CreateQuote)
	app.Get("/api/quote", h.GetPlans)
}

func (h *QuoteHandler) CreateQuote(c fiber.Ctx) error {
	var req models.CreateQuoteRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c, err)
	}
	if errs := req.Validate(); len(errs) > 0 {
		return respondValidation(c, errs)
	}

	resp, err := h.quoteService.CreateQuote(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func (h *QuoteHandler) GetPlans(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.quoteService.Plans())
}

package handlers

import (
	"net/http"

	"quote-service/internal/services"
	"quote-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (h *ContentHandler) Register(app *fiber.App) {
	app.Get("/api/content", h.GetContent)
	app.Get("/sitemap.xml", h.GetSitemap)
}

func (h *ContentHandler) GetContent(c fiber.Ctx) error {
	slug := c.Query("slug")
	if slug == "" {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("MISSING_SLUG", "Missing slug parameter"))
	}

	page, err := h.contentService.GetPage(c.Context(), slug)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(page)
}

func (h *ContentHandler) GetSitemap(c fiber.Ctx) error {
	body, err := h.contentService.Sitemap(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Status(http.StatusOK).Send(body)
}

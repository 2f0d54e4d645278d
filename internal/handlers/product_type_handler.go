package handlers

import (
	"net/http"

	"quote-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

type ProductTypeHandler struct {
	productTypeService *services.ProductTypeService
}

func NewProductTypeHandler(productTypeService *services.ProductTypeService) *ProductTypeHandler {
	return &ProductTypeHandler{productTypeService: productTypeService}
}

// Register mounts the catalog under both the tractor and the breed path.
func (h *ProductTypeHandler) Register(app *fiber.App) {
	app.Get("/api/tractor-types", h.GetProductTypes)
	app.Get("/api/breeds", h.GetProductTypes)
}

// GetProductTypes returns one type for ?name=, up to five for ?search=, else the full catalog.
func (h *ProductTypeHandler) GetProductTypes(c fiber.Ctx) error {
	if name := c.Query("name"); name != "" {
		pt, err := h.productTypeService.FindByName(c.Context(), name)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(pt)
	}

	if search := c.Query("search"); search != "" {
		types, err := h.productTypeService.Search(c.Context(), search)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(types)
	}

	types, err := h.productTypeService.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(types)
}

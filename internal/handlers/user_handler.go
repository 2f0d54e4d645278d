package handlers

import (
	"net/http"

	"quote-service/internal/models"
	"quote-service/internal/services"
	"quote-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(app *fiber.App) {
	me := app.Group("/api/users/me", requireUser)
	me.Get("/tractors", h.GetMachines)
	me.Post("/tractors", h.AddMachine)
	me.Get("/policies", h.GetPolicies)
}

// requireUser rejects requests the gateway did not authenticate.
func requireUser(c fiber.Ctx) error {
	if c.Get("X-User-ID") == "" {
		return c.Status(http.StatusUnauthorized).JSON(utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}
	return c.Next()
}

func (h *UserHandler) GetMachines(c fiber.Ctx) error {
	machines, err := h.userService.ListMachines(c.Context(), c.Get("X-User-ID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(machines, len(machines)))
}

func (h *UserHandler) AddMachine(c fiber.Ctx) error {
	var req models.AddMachineRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c, err)
	}
	if errs := req.Validate(); len(errs) > 0 {
		return respondValidation(c, errs)
	}

	machine, err := h.userService.AddMachine(c.Context(), c.Get("X-User-ID"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(machine))
}

func (h *UserHandler) GetPolicies(c fiber.Ctx) error {
	policies, err := h.userService.ListPolicies(c.Context(), c.Get("X-User-ID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(policies, len(policies)))
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"quote-service/internal/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthHandler struct {
	gatherer prometheus.Gatherer
}

func NewHealthHandler(gatherer prometheus.Gatherer) *HealthHandler {
	return &HealthHandler{gatherer: gatherer}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Quote service is healthy")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
}

// RequestMetrics records request latency per route template.
func RequestMetrics(m *metrics.Metrics) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = http.StatusInternalServerError
			}
		}
		m.ObserveRequest(c.Method(), c.Route().Path, strconv.Itoa(status), time.Since(start))
		return err
	}
}

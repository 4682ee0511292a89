package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/ports"
	"github.com/seu-repo/tradeinsight/internal/service/simulation"
)

type AnalyticsHandler struct {
	service ports.AnalyticsService
	log     *zap.Logger
}

func NewAnalyticsHandler(service ports.AnalyticsService, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, log: log}
}

func (h *AnalyticsHandler) Register(r fiber.Router) {
	r.Get("/analytics/simulate/ranges", h.Ranges)
	r.Get("/analytics/:id/dashboard", h.Dashboard)
	r.Get("/analytics/:id/import", h.ImportDashboard)
	r.Post("/analytics/:id/simulate", h.Simulate)
	r.Get("/analytics/:id/sustainability", h.Sustainability)
}

func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.service.Dashboard(c.Context(), userID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *AnalyticsHandler) ImportDashboard(c *fiber.Ctx) error {
	out, err := h.service.ImportDashboard(c.Context(), userID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *AnalyticsHandler) Simulate(c *fiber.Ctx) error {
	params := simulation.DefaultParams()
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&params); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}
	if !params.Finite() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Simulation parameters must be finite numbers"})
	}

	out, err := h.service.Simulate(c.Context(), userID(c), c.Params("id"), params)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if !out.Finite() {
		h.log.Warn("Simulation overflowed", zap.String("dataset_id", c.Params("id")))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Simulation parameters are out of range"})
	}
	return c.JSON(out)
}

func (h *AnalyticsHandler) Sustainability(c *fiber.Ctx) error {
	out, err := h.service.Sustainability(c.Context(), userID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Ranges lists the slider bounds of every simulation lever.
func (h *AnalyticsHandler) Ranges(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ranges":   simulation.ParamRanges,
		"defaults": simulation.DefaultParams(),
	})
}

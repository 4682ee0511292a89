package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/ports"
	"github.com/seu-repo/tradeinsight/internal/service/ingest"
)

type AIHandler struct {
	advisor   ports.AdvisorService
	datasets  ports.DatasetService
	analytics ports.AnalyticsService
	email     ports.EmailService
	log       *zap.Logger
}

func NewAIHandler(
	advisor ports.AdvisorService,
	datasets ports.DatasetService,
	analytics ports.AnalyticsService,
	email ports.EmailService,
	log *zap.Logger,
) *AIHandler {
	return &AIHandler{
		advisor:   advisor,
		datasets:  datasets,
		analytics: analytics,
		email:     email,
		log:       log,
	}
}

func (h *AIHandler) Register(r fiber.Router) {
	ai := r.Group("/ai")
	ai.Post("/report", h.Report)
	ai.Post("/report/email", h.EmailReport)
	ai.Post("/classify-hs", h.ClassifyHS)
	ai.Post("/sustainability-tips", h.SustainabilityTips)
	ai.Post("/opportunities", h.Opportunities)
	ai.Post("/chart", h.Chart)
}

// DataRequest selects the rows an AI call works on: inline Data wins over
// DatasetID, and an empty DatasetID selects the embedded dataset.
type DataRequest struct {
	DatasetID string             `json:"dataset_id"`
	Data      []domain.RawRecord `json:"data"`
}

type ReportRequest struct {
	DataRequest
	Focus string `json:"focus"`
	To    string `json:"to"`
}

type ClassifyRequest struct {
	Description string `json:"description"`
}

type SustainabilityTipsRequest struct {
	DatasetID string                        `json:"dataset_id"`
	Metrics   *domain.SustainabilityMetrics `json:"metrics"`
}

type OpportunitiesRequest struct {
	DataRequest
	Products []string `json:"products"`
}

type ChartRequest struct {
	DataRequest
	Query string `json:"query"`
}

func datasetOrDefault(id string) string {
	if id == "" {
		return domain.DefaultDatasetID
	}
	return id
}

func (h *AIHandler) rows(ctx context.Context, c *fiber.Ctx, req DataRequest) ([]domain.RawRecord, error) {
	if len(req.Data) > 0 {
		return req.Data, nil
	}
	return h.datasets.Rows(ctx, userID(c), datasetOrDefault(req.DatasetID))
}

func (h *AIHandler) Report(c *fiber.Ctx) error {
	var req ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	rows, err := h.rows(c.Context(), c, req.DataRequest)
	if err != nil {
		return respondError(c, h.log, err)
	}
	report, err := h.advisor.GenerateReport(c.Context(), rows, req.Focus)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(report)
}

// EmailReport generates a report and mails it to To, or to the caller when To is empty.
func (h *AIHandler) EmailReport(c *fiber.Ctx) error {
	var req ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	to := req.To
	if to == "" {
		if user, ok := c.Locals("user").(*domain.User); ok {
			to = user.Email
		}
	}
	if to == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Recipient is required"})
	}

	rows, err := h.rows(c.Context(), c, req.DataRequest)
	if err != nil {
		return respondError(c, h.log, err)
	}
	report, err := h.advisor.GenerateReport(c.Context(), rows, req.Focus)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.email.SendReport(c.Context(), to, report); err != nil {
		return respondError(c, h.log, err)
	}

	h.log.Info("Report emailed", zap.String("user_id", userID(c)), zap.String("focus", report.Focus))
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"sent_to": to,
		"report":  report,
	})
}

func (h *AIHandler) ClassifyHS(c *fiber.Ctx) error {
	var req ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	out, err := h.advisor.ClassifyHS(c.Context(), req.Description)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// SustainabilityTips uses the metrics in the body, or computes them for dataset_id.
func (h *AIHandler) SustainabilityTips(c *fiber.Ctx) error {
	var req SustainabilityTipsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	metrics := req.Metrics
	if metrics == nil {
		m, err := h.analytics.Sustainability(c.Context(), userID(c), datasetOrDefault(req.DatasetID))
		if err != nil {
			return respondError(c, h.log, err)
		}
		metrics = m
	}

	tips, err := h.advisor.SustainabilityTips(c.Context(), *metrics)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"tips": tips})
}

// Opportunities uses the products in the body, or the distinct products of the dataset.
func (h *AIHandler) Opportunities(c *fiber.Ctx) error {
	var req OpportunitiesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	products := req.Products
	if len(products) == 0 {
		rows, err := h.rows(c.Context(), c, req.DataRequest)
		if err != nil {
			return respondError(c, h.log, err)
		}
		products = ingest.UniqueProducts(ingest.NormalizeAll(rows))
	}

	out, err := h.advisor.Opportunities(c.Context(), products)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"opportunities": out})
}

func (h *AIHandler) Chart(c *fiber.Ctx) error {
	var req ChartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	rows, err := h.rows(c.Context(), c, req.DataRequest)
	if err != nil {
		return respondError(c, h.log, err)
	}
	plan, chart, err := h.advisor.Chart(c.Context(), req.Query, rows)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"plan":  plan,
		"chart": chart,
	})
}

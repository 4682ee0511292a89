package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/ports"
	"github.com/seu-repo/tradeinsight/internal/service/ingest"
)

const defaultGenerateCount = 100

type DatasetHandler struct {
	service  ports.DatasetService
	provider *ingest.DefaultProvider
	// newGenerator returns a fresh generator per request; Generator is not safe for concurrent use.
	newGenerator func() *ingest.Generator
	log          *zap.Logger
}

func NewDatasetHandler(service ports.DatasetService, provider *ingest.DefaultProvider, log *zap.Logger) *DatasetHandler {
	return &DatasetHandler{
		service:  service,
		provider: provider,
		newGenerator: func() *ingest.Generator {
			return ingest.NewGenerator(time.Now().UnixNano())
		},
		log: log,
	}
}

func (h *DatasetHandler) Register(r fiber.Router) {
	r.Get("/datasets", h.List)
	r.Post("/datasets", h.Create)
	r.Post("/datasets/upload", h.Upload)
	r.Get("/datasets/default", h.Default)
	r.Post("/datasets/generate", h.Generate)
	r.Get("/datasets/:id", h.Get)
	r.Delete("/datasets/:id", h.Delete)
}

type CreateDatasetRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Records     []domain.RawRecord `json:"records"`
}

func (h *DatasetHandler) List(c *fiber.Ctx) error {
	datasets, err := h.service.List(c.Context(), userID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"datasets": datasets})
}

func (h *DatasetHandler) Get(c *fiber.Ctx) error {
	ds, err := h.service.Get(c.Context(), userID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(ds)
}

func (h *DatasetHandler) Create(c *fiber.Ctx) error {
	var req CreateDatasetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	ds, err := h.service.Create(c.Context(), userID(c), ports.CreateDatasetInput{
		Name:        req.Name,
		Description: req.Description,
		Records:     req.Records,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ds)
}

func (h *DatasetHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), userID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Upload parses a multipart "file" field (.csv or .xlsx) and stores its rows.
func (h *DatasetHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing file field"})
	}

	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer f.Close()

	rows, err := ingest.Parse(fh.Filename, f)
	if err != nil {
		return respondError(c, h.log, err)
	}

	name := c.FormValue("name")
	if name == "" {
		name = fh.Filename
	}
	ds, err := h.service.Create(c.Context(), userID(c), ports.CreateDatasetInput{
		Name:        name,
		Description: c.FormValue("description"),
		Records:     rows,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ds)
}

// Default returns the embedded sample dataset in canonical form.
func (h *DatasetHandler) Default(c *fiber.Ctx) error {
	records := h.provider.Records()
	return c.JSON(fiber.Map{
		"records":    records,
		"products":   ingest.UniqueProducts(records),
		"currencies": ingest.UniqueCurrencies(records),
	})
}

// Generate returns ?count=N synthetic import rows. With ?save=true the rows
// are also stored as a new dataset named by ?name.
func (h *DatasetHandler) Generate(c *fiber.Ctx) error {
	count := c.QueryInt("count", defaultGenerateCount)
	if count < 1 || count > domain.MaxRecordsPerDataset {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "count must be between 1 and 500"})
	}

	rows := h.newGenerator().Generate(count)
	if !c.QueryBool("save") {
		return c.JSON(fiber.Map{"records": rows})
	}

	ds, err := h.service.Create(c.Context(), userID(c), ports.CreateDatasetInput{
		Name:        c.Query("name"),
		Description: "Generated sample data",
		Records:     rows,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ds)
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/service/advisor"
	"github.com/seu-repo/tradeinsight/internal/service/auth"
	"github.com/seu-repo/tradeinsight/internal/service/dataset"
	"github.com/seu-repo/tradeinsight/internal/service/ingest"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{auth.ErrInvalidInput, fiber.StatusBadRequest},
	{auth.ErrUserExists, fiber.StatusConflict},
	{auth.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{auth.ErrInvalidToken, fiber.StatusUnauthorized},
	{dataset.ErrInvalidRecordCount, fiber.StatusBadRequest},
	{dataset.ErrDatasetLimit, fiber.StatusBadRequest},
	{dataset.ErrDatasetNotFound, fiber.StatusNotFound},
	{ingest.ErrUnsupportedFormat, fiber.StatusBadRequest},
	{ingest.ErrEmptyFile, fiber.StatusBadRequest},
	{advisor.ErrNoData, fiber.StatusBadRequest},
	{advisor.ErrEmptyInput, fiber.StatusBadRequest},
	{advisor.ErrChartRejected, fiber.StatusBadRequest},
	{advisor.ErrAINotConfigured, fiber.StatusServiceUnavailable},
}

func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return fiber.StatusInternalServerError
}

// respondError writes {"error": ...}. Known errors keep their message;
// anything else is logged and reported generically.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Error(err),
		)
		message = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

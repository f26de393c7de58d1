package http

import (
	"fmt"

	"github.com/NeuralTrust/AppVerdict/pkg/app/batch"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/app"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const DefaultMaxBatchSize = 100

type analyzeBatchHandler struct {
	logger       *logrus.Logger
	orchestrator batch.Orchestrator
	maxBatchSize int
}

func NewAnalyzeBatchHandler(logger *logrus.Logger, orchestrator batch.Orchestrator, maxBatchSize int) Handler {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	return &analyzeBatchHandler{
		logger:       logger,
		orchestrator: orchestrator,
		maxBatchSize: maxBatchSize,
	}
}

func (h *analyzeBatchHandler) Handle(c *fiber.Ctx) error {
	records, err := app.DecodeRecords(c.Body())
	if err != nil {
		h.logger.WithError(err).Debug("failed to decode app records")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if len(records) > h.maxBatchSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": fmt.Sprintf("batch of %d records exceeds the limit of %d", len(records), h.maxBatchSize),
		})
	}

	run := h.orchestrator.AnalyzeRun(c.UserContext(), records)
	return c.Status(fiber.StatusOK).JSON(run)
}

package http

import (
	"github.com/NeuralTrust/AppVerdict/pkg/app/batch"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/app"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type analyzeHandler struct {
	logger       *logrus.Logger
	orchestrator batch.Orchestrator
}

func NewAnalyzeHandler(logger *logrus.Logger, orchestrator batch.Orchestrator) Handler {
	return &analyzeHandler{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

// Handle analyses one app record. Remote failures still answer 200 with the
// fallback verdict; only an undecodable body is rejected.
func (h *analyzeHandler) Handle(c *fiber.Ctx) error {
	record, err := app.DecodeRecord(c.Body())
	if err != nil {
		h.logger.WithError(err).Debug("failed to decode app record")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	report := h.orchestrator.Analyze(c.UserContext(), record)
	return c.Status(fiber.StatusOK).JSON(report)
}

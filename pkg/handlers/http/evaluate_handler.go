package http

import (
	"github.com/NeuralTrust/AppVerdict/pkg/app/evaluation"
	"github.com/NeuralTrust/AppVerdict/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type evaluateHandler struct {
	logger *logrus.Logger
}

func NewEvaluateHandler(logger *logrus.Logger) Handler {
	return &evaluateHandler{logger: logger}
}

// Handle computes the metrics report for a pair of label lists. Unusable
// lists answer 422 with the error and an empty metrics object.
func (h *evaluateHandler) Handle(c *fiber.Ctx) error {
	var req request.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("failed to bind evaluate request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	report, err := evaluation.Evaluate(req.TrueLabels, req.PredLabels)
	if err != nil {
		h.logger.WithError(err).Warn("evaluation preconditions not met")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   err.Error(),
			"metrics": report,
		})
	}
	return c.Status(fiber.StatusOK).JSON(report)
}

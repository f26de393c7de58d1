package http

import (
	"github.com/NeuralTrust/AppVerdict/pkg/domain"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type getRunHandler struct {
	logger *logrus.Logger
	repo   verdict.Repository
}

// NewGetRunHandler serves stored batch runs. repo may be nil when
// persistence is disabled, in which case every lookup answers 501.
func NewGetRunHandler(logger *logrus.Logger, repo verdict.Repository) Handler {
	return &getRunHandler{
		logger: logger,
		repo:   repo,
	}
}

func (h *getRunHandler) Handle(c *fiber.Ctx) error {
	if h.repo == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": "verdict persistence is disabled"})
	}
	runID, err := uuid.Parse(c.Params("run_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid run id"})
	}

	records, err := h.repo.ListByRun(c.UserContext(), runID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).WithField("run_id", runID.String()).Error("failed to load verdict run")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	reports := make([]verdict.Report, len(records))
	for i, rec := range records {
		reports[i] = rec.Report
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"run_id":  runID,
		"records": records,
		"summary": verdict.Summarize(reports),
	})
}

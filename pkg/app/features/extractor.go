package features

import (
	"context"

	"github.com/NeuralTrust/AppVerdict/pkg/domain/app"
	domain "github.com/NeuralTrust/AppVerdict/pkg/domain/features"
	"github.com/sirupsen/logrus"
)

const FinanceCategory = "Finance"

//go:generate mockery --name=Extractor --dir=. --output=./mocks --filename=extractor_mock.go --case=underscore --with-expecter

// Extractor turns a raw app record into a feature bundle. It never fails:
// every missing field falls back to its default.
type Extractor interface {
	Extract(ctx context.Context, record app.RawAppRecord) domain.Bundle
}

type Option func(*extractor)

// WithDeveloperDirectory enables the developer history enrichment.
func WithDeveloperDirectory(directory DeveloperDirectory) Option {
	return func(e *extractor) {
		e.directory = directory
	}
}

type extractor struct {
	logger    *logrus.Logger
	directory DeveloperDirectory
}

func NewExtractor(logger *logrus.Logger, opts ...Option) Extractor {
	e := &extractor{logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *extractor) Extract(ctx context.Context, record app.RawAppRecord) domain.Bundle {
	permissions := record.Permissions.List
	if permissions == nil {
		permissions = []string{}
	}
	developer := record.Developer
	if developer == nil {
		developer = map[string]any{}
	}

	bundle := domain.Bundle{
		AppID:          record.ID(),
		Title:          deref(record.Title),
		Description:    truncateRunes(deref(record.Description), domain.MaxDescriptionLength),
		Category:       deref(record.Category),
		Developer:      developer,
		ContentRating:  deref(record.ContentRating),
		ReviewsSummary: SummarizeReviews(record.Reviews),
		Permissions:    permissions,
	}
	if record.Price != nil {
		bundle.Price = *record.Price
	}
	bundle.SuspiciousIndicators = e.suspiciousIndicators(ctx, bundle)

	e.logger.WithField("app_id", bundle.AppID).Debug("preprocessed app data")
	return bundle
}

func (e *extractor) suspiciousIndicators(ctx context.Context, bundle domain.Bundle) domain.SuspiciousIndicators {
	analysis := AnalyzePermissions(bundle.Permissions)
	indicators := domain.SuspiciousIndicators{
		DangerousPermissions: analysis,
		DeveloperIssues:      e.developerIssues(ctx, bundle.Developer),
	}
	if analysis.DangerousRatio > ExcessiveDangerousRatio {
		indicators.ExcessiveDangerousPermissions = true
	}
	if bundle.Price > 0 && bundle.Category == FinanceCategory {
		indicators.PaidFinanceApp = true
	}
	return indicators
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package features

import (
	"context"

	domain "github.com/NeuralTrust/AppVerdict/pkg/domain/features"
	"github.com/sirupsen/logrus"
)

const newDeveloperAppThreshold = 3

//go:generate mockery --name=DeveloperDirectory --dir=. --output=./mocks --filename=developer_directory_mock.go --case=underscore --with-expecter

// DeveloperDirectory looks up how many apps a developer has published.
type DeveloperDirectory interface {
	AppCount(ctx context.Context, developerID string) (int, error)
}

func (e *extractor) developerIssues(ctx context.Context, developer map[string]any) domain.DeveloperIssues {
	var issues domain.DeveloperIssues

	if !truthy(developer["email"]) {
		issues.MissingContactEmail = true
	}
	if !truthy(developer["privacyPolicy"]) {
		issues.MissingPrivacyPolicy = true
	}

	if e.directory == nil {
		return issues
	}

	if !truthy(developer["website"]) {
		issues.MissingWebsite = true
	}

	developerID, ok := developer["id"].(string)
	if !ok || developerID == "" {
		return issues
	}

	count, err := e.directory.AppCount(ctx, developerID)
	if err != nil {
		e.logger.WithError(err).WithField("developer_id", developerID).Warn("failed to get developer history")
		unavailable := false
		issues.DeveloperHistoryAvailable = &unavailable
		return issues
	}

	isNew := count < newDeveloperAppThreshold
	issues.AppCount = &count
	issues.NewDeveloper = &isNew
	e.logger.WithFields(logrus.Fields{
		"developer_id": developerID,
		"app_count":    count,
	}).Debug("developer history resolved")
	return issues
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

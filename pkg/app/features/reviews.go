package features

import (
	"github.com/NeuralTrust/AppVerdict/pkg/domain/app"
	domain "github.com/NeuralTrust/AppVerdict/pkg/domain/features"
)

const (
	minReviewsForPatterns  = 10
	excessiveFiveStarRatio = 0.9
	reviewPrefixLength     = 20
	distinctPrefixMinRatio = 0.5
)

func SummarizeReviews(reviews []app.Review) domain.ReviewsSummary {
	total := len(reviews)
	if total == 0 {
		return domain.ReviewsSummary{Available: false}
	}

	var sum float64
	var fiveStars, oneStars int
	prefixes := make(map[string]struct{}, total)
	for _, r := range reviews {
		sum += r.Score
		switch r.Score {
		case 5:
			fiveStars++
		case 1:
			oneStars++
		}
		prefixes[truncateRunes(r.Text, reviewPrefixLength)] = struct{}{}
	}

	summary := domain.ReviewsSummary{
		Available:          true,
		Count:              total,
		AverageRating:      sum / float64(total),
		FiveStarPercentage: float64(fiveStars) / float64(total),
		OneStarPercentage:  float64(oneStars) / float64(total),
	}

	if total > minReviewsForPatterns {
		if summary.FiveStarPercentage > excessiveFiveStarRatio {
			summary.SuspiciousPatterns.ExcessiveFiveStars = true
		}
		if float64(len(prefixes)) < float64(total)*distinctPrefixMinRatio {
			summary.SuspiciousPatterns.SimilarReviewTexts = true
		}
	}
	return summary
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

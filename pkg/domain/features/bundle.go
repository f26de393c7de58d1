package features

import "encoding/json"

const MaxDescriptionLength = 1000

// Bundle is the normalized, fully defaulted view of one app record used for
// prompting. It is built once by the extractor and never mutated.
type Bundle struct {
	AppID                string               `json:"app_id"`
	Title                string               `json:"title"`
	Description          string               `json:"description"`
	Category             string               `json:"category"`
	Price                float64              `json:"price"`
	Developer            map[string]any       `json:"developer"`
	ContentRating        string               `json:"content_rating"`
	ReviewsSummary       ReviewsSummary       `json:"reviews_summary"`
	Permissions          []string             `json:"permissions"`
	SuspiciousIndicators SuspiciousIndicators `json:"suspicious_indicators"`
}

type ReviewsSummary struct {
	Available          bool
	Count              int
	AverageRating      float64
	FiveStarPercentage float64
	OneStarPercentage  float64
	SuspiciousPatterns ReviewPatterns
}

type ReviewPatterns struct {
	ExcessiveFiveStars bool `json:"excessive_five_stars,omitempty"`
	SimilarReviewTexts bool `json:"similar_review_texts,omitempty"`
}

func (p ReviewPatterns) Empty() bool {
	return !p.ExcessiveFiveStars && !p.SimilarReviewTexts
}

func (s ReviewsSummary) MarshalJSON() ([]byte, error) {
	if !s.Available {
		return []byte(`{"available":false}`), nil
	}
	return json.Marshal(struct {
		Available          bool           `json:"available"`
		Count              int            `json:"count"`
		AverageRating      float64        `json:"average_rating"`
		FiveStarPercentage float64        `json:"five_star_percentage"`
		OneStarPercentage  float64        `json:"one_star_percentage"`
		SuspiciousPatterns ReviewPatterns `json:"suspicious_patterns"`
	}{
		Available:          true,
		Count:              s.Count,
		AverageRating:      s.AverageRating,
		FiveStarPercentage: s.FiveStarPercentage,
		OneStarPercentage:  s.OneStarPercentage,
		SuspiciousPatterns: s.SuspiciousPatterns,
	})
}

type SuspiciousIndicators struct {
	DangerousPermissions          PermissionAnalysis `json:"dangerous_permissions"`
	ExcessiveDangerousPermissions bool               `json:"excessive_dangerous_permissions,omitempty"`
	DeveloperIssues               DeveloperIssues    `json:"developer_issues"`
	PaidFinanceApp                bool               `json:"paid_finance_app,omitempty"`
}

type PermissionAnalysis struct {
	Total          int      `json:"total"`
	DangerousCount int      `json:"dangerous_count"`
	DangerousRatio float64  `json:"dangerous_ratio"`
	DangerousFound []string `json:"dangerous_found"`
}

// DeveloperIssues holds the developer flags. The website flag and the history
// fields are only filled when a developer directory is available.
type DeveloperIssues struct {
	MissingContactEmail       bool  `json:"missing_contact_email,omitempty"`
	MissingWebsite            bool  `json:"missing_website,omitempty"`
	MissingPrivacyPolicy      bool  `json:"missing_privacy_policy,omitempty"`
	AppCount                  *int  `json:"app_count,omitempty"`
	NewDeveloper              *bool `json:"new_developer,omitempty"`
	DeveloperHistoryAvailable *bool `json:"developer_history_available,omitempty"`
}

package request

// EvaluateRequest carries aligned label lists: 0 for genuine, 1 for fraud.
type EvaluateRequest struct {
	TrueLabels []int `json:"true_labels"`
	PredLabels []int `json:"pred_labels"`
}

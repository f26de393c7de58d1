package evaluation

import "encoding/json"

const (
	LabelGenuine = 0
	LabelFraud   = 1
)

type ConfusionMatrix struct {
	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`
}

// Report holds the derived metrics for one evaluation. The zero value is the
// empty report returned when the label sequences are unusable; it serializes
// as an empty JSON object.
type Report struct {
	Accuracy          float64         `json:"accuracy"`
	Precision         float64         `json:"precision"`
	Recall            float64         `json:"recall"`
	F1Score           float64         `json:"f1_score"`
	FalsePositiveRate float64         `json:"false_positive_rate"`
	FalseNegativeRate float64         `json:"false_negative_rate"`
	ConfusionMatrix   ConfusionMatrix `json:"confusion_matrix"`
	Samples           int             `json:"-"`
}

func (r Report) IsEmpty() bool {
	return r.Samples == 0
}

func (r Report) MarshalJSON() ([]byte, error) {
	if r.IsEmpty() {
		return []byte(`{}`), nil
	}
	type plain Report
	return json.Marshal(plain(r))
}

package evaluation_test

import (
	"encoding/json"
	"testing"

	"github.com/NeuralTrust/AppVerdict/pkg/app/evaluation"
	domain "github.com/NeuralTrust/AppVerdict/pkg/domain/evaluation"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_Balanced(t *testing.T) {
	report, err := evaluation.Evaluate([]int{1, 0, 1, 0}, []int{1, 1, 0, 0})
	require.NoError(t, err)

	assert.Equal(t, domain.ConfusionMatrix{TruePositives: 1, FalsePositives: 1, TrueNegatives: 1, FalseNegatives: 1}, report.ConfusionMatrix)
	assert.InDelta(t, 0.5, report.Accuracy, 1e-9)
	assert.InDelta(t, 0.5, report.Precision, 1e-9)
	assert.InDelta(t, 0.5, report.Recall, 1e-9)
	assert.InDelta(t, 0.5, report.F1Score, 1e-9)
	assert.InDelta(t, 0.5, report.FalsePositiveRate, 1e-9)
	assert.InDelta(t, 0.5, report.FalseNegativeRate, 1e-9)
}

func TestEvaluate_Perfect(t *testing.T) {
	report, err := evaluation.Evaluate([]int{1, 1, 0}, []int{1, 1, 0})
	require.NoError(t, err)

	assert.Equal(t, 1.0, report.Accuracy)
	assert.Equal(t, 1.0, report.Precision)
	assert.Equal(t, 1.0, report.Recall)
	assert.Equal(t, 1.0, report.F1Score)
	assert.Equal(t, 0.0, report.FalsePositiveRate)
	assert.Equal(t, 0.0, report.FalseNegativeRate)
}

func TestEvaluate_ZeroDenominators(t *testing.T) {
	report, err := evaluation.Evaluate([]int{0, 0, 0}, []int{0, 0, 0})
	require.NoError(t, err)

	assert.Equal(t, 1.0, report.Accuracy)
	assert.Equal(t, 0.0, report.Precision)
	assert.Equal(t, 0.0, report.Recall)
	assert.Equal(t, 0.0, report.F1Score)
	assert.Equal(t, 0.0, report.FalsePositiveRate)
	assert.Equal(t, 0.0, report.FalseNegativeRate)
}

func TestEvaluate_CellsSumToSamples(t *testing.T) {
	truth := []int{1, 0, 1, 1, 0, 0, 1, 0, 1, 1}
	pred := []int{1, 1, 1, 0, 0, 0, 0, 1, 1, 0}
	report, err := evaluation.Evaluate(truth, pred)
	require.NoError(t, err)

	m := report.ConfusionMatrix
	assert.Equal(t, len(truth), m.TruePositives+m.FalsePositives+m.TrueNegatives+m.FalseNegatives)
	for _, r := range []float64{report.Accuracy, report.Precision, report.Recall, report.F1Score, report.FalsePositiveRate, report.FalseNegativeRate} {
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}

func TestEvaluate_Preconditions(t *testing.T) {
	tests := []struct {
		name  string
		truth []int
		pred  []int
		err   error
	}{
		{"empty", []int{}, []int{}, evaluation.ErrEmptyLabels},
		{"nil", nil, nil, evaluation.ErrEmptyLabels},
		{"length mismatch", []int{1, 0}, []int{1}, evaluation.ErrLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := evaluation.Evaluate(tt.truth, tt.pred)
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, report.IsEmpty())

			data, err := json.Marshal(report)
			require.NoError(t, err)
			assert.JSONEq(t, `{}`, string(data))
		})
	}
}

func TestEvaluate_ReportJSON(t *testing.T) {
	report, err := evaluation.Evaluate([]int{1, 0}, []int{1, 0})
	require.NoError(t, err)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"accuracy": 1,
		"precision": 1,
		"recall": 1,
		"f1_score": 1,
		"false_positive_rate": 0,
		"false_negative_rate": 0,
		"confusion_matrix": {"true_positives": 1, "false_positives": 0, "true_negatives": 1, "false_negatives": 0}
	}`, string(data))
}

func TestLabelOf(t *testing.T) {
	assert.Equal(t, 0, evaluation.LabelOf(verdict.Genuine))
	assert.Equal(t, 1, evaluation.LabelOf(verdict.Fraud))
	assert.Equal(t, 1, evaluation.LabelOf(verdict.Suspected))
}

func TestAlign(t *testing.T) {
	reports := []verdict.Report{
		verdict.NewReport(verdict.Verdict{Type: verdict.Fraud}, "a", "A"),
		verdict.NewReport(verdict.Verdict{Type: verdict.Genuine}, "b", "B"),
		verdict.NewReport(verdict.Verdict{Type: verdict.Suspected}, "c", "C"),
	}
	truth := map[string]int{"a": 1, "c": 0}

	trueLabels, predLabels, unlabeled := evaluation.Align(truth, reports)
	assert.Equal(t, []int{1, 0}, trueLabels)
	assert.Equal(t, []int{1, 1}, predLabels)
	assert.Equal(t, []string{"b"}, unlabeled)

	assert.Equal(t, []int{1, 0, 1}, evaluation.LabelsFromReports(reports))
}

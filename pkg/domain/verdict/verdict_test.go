package verdict_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	accepted := verdict.Accepted(verdict.Verdict{Type: verdict.Genuine, Reason: "looks fine"})
	assert.True(t, accepted.IsAccepted())
	assert.Equal(t, verdict.FallbackNone, accepted.FallbackCode())
	assert.Equal(t, verdict.Verdict{Type: verdict.Genuine, Reason: "looks fine"}, accepted.Verdict())

	invalid := verdict.Fallback(verdict.FallbackInvalidFormat)
	assert.False(t, invalid.IsAccepted())
	assert.Equal(t, verdict.Verdict{Type: verdict.Suspected, Reason: verdict.InvalidFormatReason}, invalid.Verdict())

	failed := verdict.Fallback(verdict.FallbackAnalysisError)
	assert.Equal(t, verdict.Verdict{Type: verdict.Suspected, Reason: verdict.AnalysisErrorReason}, failed.Verdict())

	assert.Equal(t, verdict.FallbackAnalysisError, verdict.Fallback(verdict.FallbackNone).FallbackCode())
}

func TestVerdict_Valid(t *testing.T) {
	assert.True(t, verdict.Verdict{Type: verdict.Fraud, Reason: strings.Repeat("x", 300)}.Valid())
	assert.False(t, verdict.Verdict{Type: verdict.Fraud, Reason: strings.Repeat("x", 301)}.Valid())
	assert.False(t, verdict.Verdict{Type: "maybe_fraud", Reason: "x"}.Valid())
}

func TestReport_JSON(t *testing.T) {
	report := verdict.NewReport(verdict.Verdict{Type: verdict.Fraud, Reason: "clone"}, "com.a", "A")

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"fraud","reason":"clone","app_id":"com.a","app_title":"A"}`, string(data))
}

func TestSummarize(t *testing.T) {
	reports := []verdict.Report{
		verdict.NewReport(verdict.Verdict{Type: verdict.Fraud}, "a", "a"),
		verdict.NewReport(verdict.Verdict{Type: verdict.Suspected}, "b", "b"),
		verdict.NewReport(verdict.Verdict{Type: verdict.Suspected}, "c", "c"),
		verdict.NewReport(verdict.Verdict{Type: verdict.Genuine}, "d", "d"),
	}

	assert.Equal(t, verdict.Summary{Total: 4, Fraud: 1, Suspected: 2, Genuine: 1}, verdict.Summarize(reports))
}

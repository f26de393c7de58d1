package prompt_test

import (
	"context"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/NeuralTrust/AppVerdict/pkg/app/features"
	"github.com/NeuralTrust/AppVerdict/pkg/app/prompt"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/app"
	domain "github.com/NeuralTrust/AppVerdict/pkg/domain/features"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBundle(t *testing.T) domain.Bundle {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	rec, err := app.RecordFromMap(map[string]any{
		"appId":         "com.test.app",
		"title":         "Test Finance App",
		"description":   "This is a test finance app that helps you manage your money.",
		"category":      "Finance",
		"contentRating": "Rated for 3+",
		"price":         1.5,
		"developer":     map[string]any{"privacyPolicy": "https://testapp.com/privacy?a=1&b=2"},
		"permissions":   map[string]any{"count": 1, "list": []any{"android.permission.READ_SMS"}},
	})
	require.NoError(t, err)
	return features.NewExtractor(logger).Extract(context.Background(), rec)
}

func TestBuild_ContainsFields(t *testing.T) {
	text, err := prompt.NewBuilder().Build(sampleBundle(t))
	require.NoError(t, err)

	assert.Contains(t, text, "App Title: Test Finance App")
	assert.Contains(t, text, "App Category: Finance")
	assert.Contains(t, text, "Price: 1.5")
	assert.Contains(t, text, "Content Rating: Rated for 3+")
	assert.Contains(t, text, "android.permission.READ_SMS")
	assert.Contains(t, text, `"paid_finance_app": true`)
	assert.Contains(t, text, "https://testapp.com/privacy?a=1&b=2")
	assert.Contains(t, text, "JSON object")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(text), "the output must match the exact format specified."))
}

func TestBuild_SectionOrder(t *testing.T) {
	text, err := prompt.NewBuilder().Build(sampleBundle(t))
	require.NoError(t, err)

	sections := []string{
		"App Title:",
		"Description:",
		"Developer Info:",
		"Permissions:",
		"Review Analysis:",
		"Suspicious indicators already identified:",
		"Analyze for these common fraud patterns:",
		"Based on this information:",
		prompt.OutputInstruction,
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(text, s)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
}

func TestBuild_IsDeterministic(t *testing.T) {
	b := prompt.NewBuilder()
	bundle := sampleBundle(t)

	first, err := b.Build(bundle)
	require.NoError(t, err)
	second, err := b.Build(bundle)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, strings.Count(first, prompt.OutputInstruction))
}

func TestBuild_EncodingError(t *testing.T) {
	bundle := sampleBundle(t)
	bundle.Developer = map[string]any{"bad": math.NaN()}

	_, err := prompt.NewBuilder().Build(bundle)
	assert.Error(t, err)
}

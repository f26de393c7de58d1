package cache_test

import (
	"strings"
	"testing"

	"github.com/NeuralTrust/AppVerdict/pkg/infra/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseMaterial() cache.KeyMaterial {
	return cache.KeyMaterial{
		Provider:       "gemini",
		Model:          "gemini-2.0-flash",
		Temperature:    0.2,
		TopP:           0.8,
		TopK:           40,
		CandidateCount: 1,
		MaxTokens:      1024,
		Prompt:         "Analyze this app",
	}
}

func TestVerdictKey_Stable(t *testing.T) {
	a, err := cache.VerdictKey(baseMaterial())
	require.NoError(t, err)
	b, err := cache.VerdictKey(baseMaterial())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "verdict:"))
	assert.Len(t, strings.TrimPrefix(a, "verdict:"), 64)
}

func TestVerdictKey_ChangesWithInputs(t *testing.T) {
	base, err := cache.VerdictKey(baseMaterial())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*cache.KeyMaterial)
	}{
		{"provider", func(m *cache.KeyMaterial) { m.Provider = "openai" }},
		{"model", func(m *cache.KeyMaterial) { m.Model = "gpt-4o-mini" }},
		{"temperature", func(m *cache.KeyMaterial) { m.Temperature = 0.7 }},
		{"top_p", func(m *cache.KeyMaterial) { m.TopP = 0.95 }},
		{"top_k", func(m *cache.KeyMaterial) { m.TopK = 20 }},
		{"candidate_count", func(m *cache.KeyMaterial) { m.CandidateCount = 2 }},
		{"max_tokens", func(m *cache.KeyMaterial) { m.MaxTokens = 256 }},
		{"system prompt", func(m *cache.KeyMaterial) { m.SystemPrompt = "You review app listings." }},
		{"instructions", func(m *cache.KeyMaterial) { m.Instructions = []string{"Flag impersonation."} }},
		{"prompt", func(m *cache.KeyMaterial) { m.Prompt = "Analyze this app." }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := baseMaterial()
			tt.mutate(&m)
			key, err := cache.VerdictKey(m)
			require.NoError(t, err)
			assert.NotEqual(t, base, key)
		})
	}
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptQuery(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantQuery string
		wantTopN  int
		wantOut   string
	}{
		{"query and count", "games\n12\n", "games", 12, "How many apps"},
		{"empty query uses defaults", "\n", DefaultQuery, DefaultTopN, "Using default query 'finance'"},
		{"misspelling is corrected", "buisness\n3\n", "business", 3, "Using 'business' instead of 'buisness'"},
		{"misspelling ignores case", "Buisness\n\n", "business", DefaultTopN, "corrected spelling"},
		{"empty count uses default", "social\n\n", "social", DefaultTopN, ""},
		{"invalid count uses default", "social\nmany\n", "social", DefaultTopN, "Invalid input. Using default (5 apps)"},
		{"negative count uses default", "social\n-2\n", "social", DefaultTopN, "Invalid input"},
		{"closed input", "", DefaultQuery, DefaultTopN, "Using default query"},
		{"no trailing newline", "education", "education", DefaultTopN, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			query, topN := promptQuery(strings.NewReader(tt.input), &out, DefaultTopN)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantTopN, topN)
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func TestPromptQuery_UsesGivenDefaultCount(t *testing.T) {
	var out bytes.Buffer
	query, topN := promptQuery(strings.NewReader("finance\n\n"), &out, 8)
	assert.Equal(t, "finance", query)
	assert.Equal(t, 8, topN)
	assert.Contains(t, out.String(), "[8]")
}

func TestResolveQuery_NoPrompt(t *testing.T) {
	var out bytes.Buffer
	query, topN := resolveQuery(&options{noPrompt: true}, strings.NewReader("ignored\n"), &out)
	assert.Equal(t, DefaultQuery, query)
	assert.Equal(t, DefaultTopN, topN)
	assert.Contains(t, out.String(), "--no-prompt specified")

	out.Reset()
	query, topN = resolveQuery(&options{noPrompt: true, query: "buisness", topN: 2}, strings.NewReader(""), &out)
	assert.Equal(t, "business", query)
	assert.Equal(t, 2, topN)
}

func TestResolveQuery_PromptsByDefault(t *testing.T) {
	var out bytes.Buffer
	query, topN := resolveQuery(&options{query: "finance", topN: 4}, strings.NewReader("games\n\n"), &out)
	assert.Equal(t, "games", query)
	assert.Equal(t, 4, topN)
}

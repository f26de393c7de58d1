package providers_test

import (
	"testing"

	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers"
	"github.com/stretchr/testify/assert"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced bare", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  \n{\"a\":1}\n ", `{"a":1}`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, providers.CleanJSONResponse(tt.in))
		})
	}
}

func TestFormatInstructions(t *testing.T) {
	assert.Equal(t, "[Instructions]\n", providers.FormatInstructions(nil))
	assert.Equal(t, "[Instructions]\n- one\n- two\n", providers.FormatInstructions([]string{"one", " ", "two"}))
}

func TestConfig_WantsJSON(t *testing.T) {
	assert.True(t, (&providers.Config{ResponseMIMEType: providers.ResponseMIMETypeJSON}).WantsJSON())
	assert.False(t, (&providers.Config{}).WantsJSON())
}

func TestConfig_RequireAPIKey(t *testing.T) {
	assert.ErrorIs(t, (&providers.Config{}).RequireAPIKey(false), providers.ErrMissingAPIKey)
	assert.NoError(t, (&providers.Config{Credentials: providers.Credentials{ApiKey: "k"}}).RequireAPIKey(false))
	assert.ErrorIs(t, (&providers.Config{Credentials: providers.Credentials{ApiKey: "k"}}).RequireAPIKey(true), providers.ErrMissingModel)
	assert.NoError(t, (&providers.Config{Credentials: providers.Credentials{ApiKey: "k"}, Model: "m"}).RequireAPIKey(true))
}

package factory_test

import (
	"testing"

	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderLocator_Get(t *testing.T) {
	locator := factory.NewProviderLocator()

	for _, name := range []string{"gemini", "google", "", "openai", "anthropic", "bedrock", " OpenAI "} {
		t.Run(name, func(t *testing.T) {
			client, err := locator.Get(name)
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestProviderLocator_SameInstance(t *testing.T) {
	locator := factory.NewProviderLocator()

	a, err := locator.Get(factory.ProviderGemini)
	require.NoError(t, err)
	b, err := locator.Get("google")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestProviderLocator_Unsupported(t *testing.T) {
	locator := factory.NewProviderLocator()

	client, err := locator.Get("azure")
	assert.Nil(t, client)
	assert.EqualError(t, err, "unsupported provider: azure")
}

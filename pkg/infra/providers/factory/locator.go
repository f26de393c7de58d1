package factory

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers/anthropic"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers/bedrock"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers/gemini"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers/openai"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
)

//go:generate mockery --name=ProviderLocator --dir=. --output=./mocks --filename=provider_locator_mock.go --case=underscore --with-expecter

type ProviderLocator interface {
	Get(provider string) (providers.Client, error)
}

type providerLocator struct {
	gemini    providers.Client
	openai    providers.Client
	anthropic providers.Client
	bedrock   providers.Client
}

// NewProviderLocator builds every provider once so their client pools are
// shared across lookups.
func NewProviderLocator() ProviderLocator {
	return &providerLocator{
		gemini:    gemini.NewGeminiClient(),
		openai:    openai.NewOpenaiClient(),
		anthropic: anthropic.NewAnthropicClient(),
		bedrock:   bedrock.NewBedrockClient(),
	}
}

func (f *providerLocator) Get(provider string) (providers.Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderGemini, "google", "":
		return f.gemini, nil
	case ProviderOpenAI:
		return f.openai, nil
	case ProviderAnthropic:
		return f.anthropic, nil
	case ProviderBedrock:
		return f.bedrock, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

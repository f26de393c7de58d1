package providers

import (
	"context"
	"errors"
)

const ResponseMIMETypeJSON = "application/json"

var (
	ErrMissingAPIKey = errors.New("API key is required")
	ErrMissingModel  = errors.New("model is required")
)

// Config carries the model selection and generation settings for one call.
type Config struct {
	Credentials      Credentials `json:"credentials"`
	Model            string      `json:"model"`
	MaxTokens        int         `json:"max_tokens,omitempty"`
	Temperature      float64     `json:"temperature,omitempty"`
	TopP             float64     `json:"top_p,omitempty"`
	TopK             int         `json:"top_k,omitempty"`
	CandidateCount   int         `json:"candidate_count,omitempty"`
	ResponseMIMEType string      `json:"response_mime_type,omitempty"`
	SystemPrompt     string      `json:"system_prompt,omitempty"`
	Instructions     []string    `json:"instructions,omitempty"`
}

type Credentials struct {
	ApiKey     string      `json:"api_key"`
	AwsBedrock *AwsBedrock `json:"aws_bedrock,omitempty"`
}

type AwsBedrock struct {
	Region    string `json:"region" mapstructure:"region"`
	AccessKey string `json:"access_key" mapstructure:"access_key"`
	SecretKey string `json:"secret_key" mapstructure:"secret_key"`
	UseRole   bool   `json:"use_role" mapstructure:"use_role"`
	RoleARN   string `json:"role_arn" mapstructure:"role_arn"`
}

// RequireAPIKey checks the settings every key-based provider needs. Model is
// only checked when requireModel is set; some providers have a default.
func (c *Config) RequireAPIKey(requireModel bool) error {
	if c.Credentials.ApiKey == "" {
		return ErrMissingAPIKey
	}
	if requireModel && c.Model == "" {
		return ErrMissingModel
	}
	return nil
}

// WantsJSON reports whether the caller asked for a forced JSON response.
func (c *Config) WantsJSON() bool {
	return c.ResponseMIMEType == ResponseMIMETypeJSON
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

type Client interface {
	Ask(ctx context.Context, config *Config, prompt string) (*CompletionResponse, error)
}

// Verifier is implemented by providers that can check credentials and model
// availability before any prompt is sent.
type Verifier interface {
	Verify(ctx context.Context, config *Config) error
}

package gemini

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers"
	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

type client struct {
	clientPool *sync.Map
	sf         singleflight.Group
}

func NewGeminiClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
	}
}

func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	if err := config.RequireAPIKey(false); err != nil {
		return nil, err
	}

	model := config.Model
	if model == "" {
		model = DefaultModel
	}

	genaiClient, err := c.getOrCreateClient(ctx, config.Credentials.ApiKey)
	if err != nil {
		return nil, err
	}

	result, err := genaiClient.Models.GenerateContent(
		ctx,
		model,
		genai.Text(prompt),
		generationConfig(config),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	responseText := providers.CleanJSONResponse(result.Text())
	if responseText == "" {
		return nil, fmt.Errorf("no completions returned")
	}

	completionResp := &providers.CompletionResponse{
		ID:       fmt.Sprintf("gemini-%d", time.Now().UnixNano()),
		Model:    model,
		Response: responseText,
	}
	if result.ResponseID != "" {
		completionResp.ID = result.ResponseID
	}
	if len(result.Candidates) > 0 {
		completionResp.FinishReason = string(result.Candidates[0].FinishReason)
	}
	if result.UsageMetadata != nil {
		completionResp.Usage = providers.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return completionResp, nil
}

// Verify resolves the configured model, which fails fast on a bad key or an
// unknown model name.
func (c *client) Verify(ctx context.Context, config *providers.Config) error {
	if err := config.RequireAPIKey(false); err != nil {
		return err
	}
	model := config.Model
	if model == "" {
		model = DefaultModel
	}
	genaiClient, err := c.getOrCreateClient(ctx, config.Credentials.ApiKey)
	if err != nil {
		return err
	}
	if _, err := genaiClient.Models.Get(ctx, model, nil); err != nil {
		return fmt.Errorf("failed to resolve gemini model %s: %w", model, err)
	}
	return nil
}

func generationConfig(config *providers.Config) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{
		ResponseMIMEType: config.ResponseMIMEType,
	}
	if config.Temperature > 0 {
		gc.Temperature = float32Ptr(config.Temperature)
	}
	if config.TopP > 0 {
		gc.TopP = float32Ptr(config.TopP)
	}
	if config.TopK > 0 {
		gc.TopK = float32Ptr(float64(config.TopK))
	}
	if config.CandidateCount > 0 {
		gc.CandidateCount = int32(config.CandidateCount)
	}
	if config.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(config.MaxTokens)
	}

	var parts []*genai.Part
	if config.SystemPrompt != "" {
		parts = append(parts, &genai.Part{Text: config.SystemPrompt})
	}
	if len(config.Instructions) > 0 {
		parts = append(parts, &genai.Part{Text: providers.FormatInstructions(config.Instructions)})
	}
	if len(parts) > 0 {
		gc.SystemInstruction = &genai.Content{Parts: parts, Role: "system"}
	}
	return gc
}

func (c *client) getOrCreateClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if v, ok := c.clientPool.Load(apiKey); ok {
		if cli, ok := v.(*genai.Client); ok {
			return cli, nil
		}
	}
	v, err, _ := c.sf.Do(apiKey, func() (any, error) {
		if v2, ok := c.clientPool.Load(apiKey); ok {
			return v2, nil
		}
		cli, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		c.clientPool.Store(apiKey, cli)
		return cli, nil
	})
	if err != nil {
		return nil, err
	}
	cli, ok := v.(*genai.Client)
	if !ok {
		return nil, fmt.Errorf("unexpected gemini client type %T", v)
	}
	return cli, nil
}

func float32Ptr(v float64) *float32 {
	f := float32(v)
	return &f
}

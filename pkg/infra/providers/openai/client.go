package openai

import (
	"context"
	"fmt"
	"sync"

	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"golang.org/x/sync/singleflight"
)

type client struct {
	clientPool *sync.Map
	sf         singleflight.Group
}

func NewOpenaiClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
	}
}

func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	if err := config.RequireAPIKey(true); err != nil {
		return nil, err
	}

	openaiClient := c.getOrCreateClient(config.Credentials.ApiKey)

	resp, err := openaiClient.Chat.Completions.New(ctx, chatParams(config, prompt))
	if err != nil {
		return nil, fmt.Errorf("OpenAI request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completions returned")
	}

	return &providers.CompletionResponse{
		ID:           resp.ID,
		Model:        resp.Model,
		Response:     providers.CleanJSONResponse(resp.Choices[0].Message.Content),
		FinishReason: resp.Choices[0].FinishReason,
		Usage: providers.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

func (c *client) Verify(ctx context.Context, config *providers.Config) error {
	if err := config.RequireAPIKey(true); err != nil {
		return err
	}
	openaiClient := c.getOrCreateClient(config.Credentials.ApiKey)
	if _, err := openaiClient.Models.Get(ctx, config.Model); err != nil {
		return fmt.Errorf("failed to resolve openai model %s: %w", config.Model, err)
	}
	return nil
}

func chatParams(config *providers.Config, prompt string) openai.ChatCompletionNewParams {
	var messages []openai.ChatCompletionMessageParamUnion

	if config.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(config.SystemPrompt))
	}
	if len(config.Instructions) > 0 {
		messages = append(messages, openai.UserMessage(providers.FormatInstructions(config.Instructions)))
	}
	if prompt != "" {
		messages = append(messages, openai.UserMessage(prompt))
	}

	params := openai.ChatCompletionNewParams{
		Model:    config.Model,
		Messages: messages,
	}
	if config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(config.MaxTokens))
	}
	if config.Temperature > 0 {
		params.Temperature = openai.Float(config.Temperature)
	}
	if config.TopP > 0 {
		params.TopP = openai.Float(config.TopP)
	}
	if config.CandidateCount > 0 {
		params.N = openai.Int(int64(config.CandidateCount))
	}
	if config.WantsJSON() {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
	return params
}

func (c *client) getOrCreateClient(apiKey string) *openai.Client {
	if v, ok := c.clientPool.Load(apiKey); ok {
		if client, ok := v.(*openai.Client); ok {
			return client
		}
	}
	v, err, _ := c.sf.Do(apiKey, func() (any, error) {
		if v2, ok := c.clientPool.Load(apiKey); ok {
			return v2, nil
		}
		cli := openai.NewClient(option.WithAPIKey(apiKey))
		c.clientPool.Store(apiKey, &cli)
		return &cli, nil
	})
	if err == nil {
		if client, ok := v.(*openai.Client); ok {
			return client
		}
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &cli
}

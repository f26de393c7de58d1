package bedrock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	stsTypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
	"golang.org/x/sync/singleflight"
)

const (
	defaultRegion      = "us-east-1"
	defaultSessionName = "AppVerdictSession"
)

// ConverseAPI is the subset of the Bedrock runtime used by the client.
type ConverseAPI interface {
	Converse(
		ctx context.Context,
		params *bedrockruntime.ConverseInput,
		optFns ...func(*bedrockruntime.Options),
	) (*bedrockruntime.ConverseOutput, error)
}

type clientFactory func(ctx context.Context, credentials providers.Credentials) (ConverseAPI, error)

type client struct {
	clientPool *sync.Map
	sf         singleflight.Group
	newRuntime clientFactory
}

func NewBedrockClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
		newRuntime: newRuntimeClient,
	}
}

// NewBedrockClientWithRuntime pins every call to the given runtime, bypassing
// credential resolution.
func NewBedrockClientWithRuntime(runtime ConverseAPI) providers.Client {
	return &client{
		clientPool: &sync.Map{},
		newRuntime: func(context.Context, providers.Credentials) (ConverseAPI, error) {
			return runtime, nil
		},
	}
}

func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	if config.Model == "" {
		return nil, providers.ErrMissingModel
	}

	runtime, err := c.getOrCreateClient(ctx, config.Credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
	}

	out, err := runtime.Converse(ctx, converseInput(config, prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to invoke model: %w", err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, fmt.Errorf("unexpected converse output %T", out.Output)
	}
	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	responseText := providers.CleanJSONResponse(sb.String())
	if responseText == "" {
		return nil, fmt.Errorf("no text content returned")
	}

	resp := &providers.CompletionResponse{
		ID:           fmt.Sprintf("bedrock-%d", time.Now().UnixNano()),
		Model:        config.Model,
		Response:     responseText,
		FinishReason: string(out.StopReason),
	}
	if out.Usage != nil {
		resp.Usage = providers.Usage{
			PromptTokens:     int(aws.ToInt32(out.Usage.InputTokens)),
			CompletionTokens: int(aws.ToInt32(out.Usage.OutputTokens)),
			TotalTokens:      int(aws.ToInt32(out.Usage.TotalTokens)),
		}
	}
	return resp, nil
}

func converseInput(config *providers.Config, prompt string) *bedrockruntime.ConverseInput {
	var content []types.ContentBlock
	if len(config.Instructions) > 0 {
		content = append(content, &types.ContentBlockMemberText{
			Value: providers.FormatInstructions(config.Instructions),
		})
	}
	content = append(content, &types.ContentBlockMemberText{Value: prompt})

	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(config.Model),
		Messages: []types.Message{
			{Role: types.ConversationRoleUser, Content: content},
		},
	}

	systemPrompt := config.SystemPrompt
	if config.WantsJSON() {
		systemPrompt = strings.TrimSpace(systemPrompt + "\nRespond with a single JSON object and nothing else.")
	}
	if systemPrompt != "" {
		input.System = []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: systemPrompt},
		}
	}

	inference := &types.InferenceConfiguration{}
	if config.MaxTokens > 0 {
		inference.MaxTokens = aws.Int32(int32(config.MaxTokens))
	}
	if config.Temperature > 0 {
		inference.Temperature = aws.Float32(float32(config.Temperature))
	}
	if config.TopP > 0 {
		inference.TopP = aws.Float32(float32(config.TopP))
	}
	input.InferenceConfig = inference
	return input
}

func (c *client) getOrCreateClient(ctx context.Context, credentials providers.Credentials) (ConverseAPI, error) {
	clientKey := buildClientKey(credentials)
	if clientVal, ok := c.clientPool.Load(clientKey); ok {
		runtime, ok := clientVal.(ConverseAPI)
		if !ok {
			return nil, fmt.Errorf("invalid client type in pool")
		}
		return runtime, nil
	}
	v, err, _ := c.sf.Do(clientKey, func() (any, error) {
		if v2, ok := c.clientPool.Load(clientKey); ok {
			return v2, nil
		}
		runtime, err := c.newRuntime(ctx, credentials)
		if err != nil {
			return nil, err
		}
		c.clientPool.Store(clientKey, runtime)
		return runtime, nil
	})
	if err != nil {
		return nil, err
	}
	runtime, ok := v.(ConverseAPI)
	if !ok {
		return nil, fmt.Errorf("invalid client type in pool")
	}
	return runtime, nil
}

func newRuntimeClient(ctx context.Context, credentials providers.Credentials) (ConverseAPI, error) {
	cfg, err := buildAwsConfig(ctx, credentials)
	if err != nil {
		return nil, err
	}
	return bedrockruntime.NewFromConfig(cfg), nil
}

func buildClientKey(credentials providers.Credentials) string {
	if credentials.AwsBedrock == nil {
		return credentials.ApiKey
	}
	return fmt.Sprintf("%s:%s:%s:%v:%s",
		credentials.ApiKey,
		credentials.AwsBedrock.AccessKey,
		credentials.AwsBedrock.Region,
		credentials.AwsBedrock.UseRole,
		credentials.AwsBedrock.RoleARN,
	)
}

func buildAwsConfig(ctx context.Context, credentials providers.Credentials) (aws.Config, error) {
	if credentials.AwsBedrock == nil {
		return aws.Config{}, fmt.Errorf("aws credentials are required")
	}

	region := credentials.AwsBedrock.Region
	if region == "" {
		region = defaultRegion
	}

	accessKey := credentials.AwsBedrock.AccessKey
	secretKey := credentials.AwsBedrock.SecretKey

	if credentials.AwsBedrock.UseRole && credentials.AwsBedrock.RoleARN != "" {
		creds, err := assumeRole(ctx, accessKey, secretKey, credentials.AwsBedrock.RoleARN, region)
		if err != nil {
			return aws.Config{}, err
		}
		return loadAWSConfig(ctx, *creds.AccessKeyId, *creds.SecretAccessKey, *creds.SessionToken, region)
	}

	return loadAWSConfig(ctx, accessKey, secretKey, "", region)
}

func loadAWSConfig(ctx context.Context, accessKey, secretKey, sessionToken, region string) (aws.Config, error) {
	if accessKey == "" {
		// fall back to the default chain (env, shared config, instance role)
		return config.LoadDefaultConfig(ctx, config.WithRegion(region))
	}
	return config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     accessKey,
					SecretAccessKey: secretKey,
					SessionToken:    sessionToken,
				}, nil
			},
		)),
		config.WithRegion(region),
	)
}

func assumeRole(ctx context.Context, accessKey, secretKey, roleARN, region string) (*stsTypes.Credentials, error) {
	baseCfg, err := loadAWSConfig(ctx, accessKey, secretKey, "", region)
	if err != nil {
		return nil, fmt.Errorf("unable to load base AWS config: %w", err)
	}
	stsClient := sts.NewFromConfig(baseCfg)

	output, err := stsClient.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(defaultSessionName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assume role: %w", err)
	}
	return output.Credentials, nil
}

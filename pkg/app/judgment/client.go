package judgment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/app/prompt"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/features"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/cache"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/httpx"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/prometheus"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTimeout        = 60 * time.Second
	DefaultTemperature    = 0.2
	DefaultTopP           = 0.8
	DefaultTopK           = 40
	DefaultCandidateCount = 1
	DefaultMaxTokens      = 1024
)

var (
	ErrEmptyResponse = errors.New("judgment provider returned no response")
)

// Config is the generation setup sent with every judgment call.
type Config struct {
	Provider       string        `mapstructure:"provider"`
	Model          string        `mapstructure:"model"`
	APIKey         string        `mapstructure:"api_key"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Temperature    float64       `mapstructure:"temperature"`
	TopP           float64       `mapstructure:"top_p"`
	TopK           int           `mapstructure:"top_k"`
	CandidateCount int           `mapstructure:"candidate_count"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	// SystemPrompt and Instructions are sent ahead of the rendered prompt.
	// The closing output instruction always stays in the prompt itself.
	SystemPrompt string   `mapstructure:"system_prompt"`
	Instructions []string `mapstructure:"instructions"`

	AwsBedrock *providers.AwsBedrock `mapstructure:"aws_bedrock"`
}

func DefaultConfig() Config {
	return Config{
		Provider:       "gemini",
		Model:          "gemini-2.0-flash",
		Timeout:        DefaultTimeout,
		Temperature:    DefaultTemperature,
		TopP:           DefaultTopP,
		TopK:           DefaultTopK,
		CandidateCount: DefaultCandidateCount,
		MaxTokens:      DefaultMaxTokens,
	}
}

func (c Config) providerConfig() *providers.Config {
	return &providers.Config{
		Credentials: providers.Credentials{
			ApiKey:     c.APIKey,
			AwsBedrock: c.AwsBedrock,
		},
		Model:            c.Model,
		MaxTokens:        c.MaxTokens,
		Temperature:      c.Temperature,
		TopP:             c.TopP,
		TopK:             c.TopK,
		CandidateCount:   c.CandidateCount,
		ResponseMIMEType: providers.ResponseMIMETypeJSON,
		SystemPrompt:     c.SystemPrompt,
		Instructions:     c.Instructions,
	}
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

// Client turns a feature bundle into a verdict. Neither method returns an
// error; every failure resolves to a fallback verdict.
type Client interface {
	Judge(ctx context.Context, bundle features.Bundle) verdict.Outcome
	Classify(ctx context.Context, bundle features.Bundle) verdict.Verdict
}

type Option func(*client)

func WithCache(c cache.VerdictCache) Option {
	return func(cl *client) {
		cl.cache = c
	}
}

func WithCircuitBreaker(b httpx.CircuitBreaker) Option {
	return func(cl *client) {
		cl.breaker = b
	}
}

func WithPromptBuilder(b prompt.Builder) Option {
	return func(cl *client) {
		cl.builder = b
	}
}

type client struct {
	logger   *logrus.Logger
	provider providers.Client
	builder  prompt.Builder
	cache    cache.VerdictCache
	breaker  httpx.CircuitBreaker
	cfg      Config
}

func NewClient(logger *logrus.Logger, provider providers.Client, cfg Config, opts ...Option) Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	c := &client{
		logger:   logger,
		provider: provider,
		builder:  prompt.NewBuilder(),
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) Classify(ctx context.Context, bundle features.Bundle) verdict.Verdict {
	return c.Judge(ctx, bundle).Verdict()
}

func (c *client) Judge(ctx context.Context, bundle features.Bundle) (outcome verdict.Outcome) {
	log := c.logger.WithField("app_id", bundle.AppID)
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("judgment panicked")
			outcome = verdict.Fallback(verdict.FallbackAnalysisError)
		}
		c.record(log, outcome)
	}()

	text, err := c.builder.Build(bundle)
	if err != nil {
		log.WithError(err).Error("failed to build prompt")
		return verdict.Fallback(verdict.FallbackAnalysisError)
	}

	key := c.cacheKey(log, text)
	if v, ok := c.lookup(ctx, log, key); ok {
		return verdict.Accepted(v)
	}

	raw, err := c.ask(ctx, text)
	if err != nil {
		log.WithError(err).Error("judgment call failed")
		return verdict.Fallback(verdict.FallbackAnalysisError)
	}

	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.WithError(err).WithField("response", truncate(raw, 200)).Error("judgment response is not JSON")
		return verdict.Fallback(verdict.FallbackAnalysisError)
	}
	if !validJSON([]byte(raw)) {
		log.WithField("response", truncate(raw, 200)).Warn("judgment response failed validation")
		return verdict.Fallback(verdict.FallbackInvalidFormat)
	}

	var v verdict.Verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.WithError(err).Error("failed to decode validated verdict")
		return verdict.Fallback(verdict.FallbackAnalysisError)
	}

	if key != "" {
		if err := c.cache.Set(ctx, key, v); err != nil {
			log.WithError(err).Warn("failed to cache verdict")
		}
	}
	return verdict.Accepted(v)
}

func (c *client) ask(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		prometheus.JudgmentLatency.
			WithLabelValues(c.cfg.Provider, c.cfg.Model).
			Observe(float64(time.Since(start).Milliseconds()))
	}()

	var resp *providers.CompletionResponse
	call := func() error {
		var err error
		resp, err = c.provider.Ask(ctx, c.cfg.providerConfig(), text)
		return err
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(call)
	} else {
		err = call()
	}
	if err != nil {
		return "", fmt.Errorf("ask %s: %w", c.cfg.Provider, err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	return providers.CleanJSONResponse(resp.Response), nil
}

func (c *client) cacheKey(log *logrus.Entry, text string) string {
	if c.cache == nil {
		return ""
	}
	key, err := cache.VerdictKey(cache.KeyMaterial{
		Provider:       c.cfg.Provider,
		Model:          c.cfg.Model,
		Temperature:    c.cfg.Temperature,
		TopP:           c.cfg.TopP,
		TopK:           c.cfg.TopK,
		CandidateCount: c.cfg.CandidateCount,
		MaxTokens:      c.cfg.MaxTokens,
		SystemPrompt:   c.cfg.SystemPrompt,
		Instructions:   c.cfg.Instructions,
		Prompt:         text,
	})
	if err != nil {
		log.WithError(err).Warn("failed to derive cache key")
		return ""
	}
	return key
}

func (c *client) lookup(ctx context.Context, log *logrus.Entry, key string) (verdict.Verdict, bool) {
	if key == "" {
		return verdict.Verdict{}, false
	}
	v, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		log.WithError(err).Warn("verdict cache lookup failed")
		prometheus.CacheLookupsTotal.WithLabelValues("error").Inc()
	case ok:
		prometheus.CacheLookupsTotal.WithLabelValues("hit").Inc()
		log.Debug("verdict served from cache")
	default:
		prometheus.CacheLookupsTotal.WithLabelValues("miss").Inc()
	}
	return v, ok && err == nil
}

func (c *client) record(log *logrus.Entry, outcome verdict.Outcome) {
	v := outcome.Verdict()
	if outcome.IsAccepted() {
		prometheus.VerdictsTotal.WithLabelValues(string(v.Type), "accepted").Inc()
		log.WithField("verdict", v.Type).Info("verdict accepted")
		return
	}
	code := outcome.FallbackCode()
	prometheus.VerdictsTotal.WithLabelValues(string(v.Type), "fallback").Inc()
	prometheus.FallbacksTotal.WithLabelValues(string(code)).Inc()
	log.WithField("fallback", code).Warn("fallback verdict used")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Verify checks credentials and model availability for providers that
// support it. Other providers pass unchecked.
func Verify(ctx context.Context, provider providers.Client, cfg Config) error {
	verifier, ok := provider.(providers.Verifier)
	if !ok {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := verifier.Verify(ctx, cfg.providerConfig()); err != nil {
		return fmt.Errorf("verify %s provider: %w", cfg.Provider, err)
	}
	return nil
}

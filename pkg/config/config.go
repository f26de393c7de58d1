package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/app/judgment"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/telemetry"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/cache"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/database"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/playstore"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInputPath   = "data/input/input.json"
	DefaultOutputPath  = "data/output/analysis_results.json"
	DefaultMetricsPath = "data/output/metrics.json"
)

type Config struct {
	Judgment  judgment.Config  `mapstructure:"judgment"`
	Batch     BatchConfig      `mapstructure:"batch"`
	Paths     PathsConfig      `mapstructure:"paths"`
	Cache     CacheConfig      `mapstructure:"cache"`
	Redis     cache.Config     `mapstructure:"redis"`
	Database  database.Config  `mapstructure:"database"`
	Telemetry TelemetryConfig  `mapstructure:"telemetry"`
	Server    ServerConfig     `mapstructure:"server"`
	Scraper   playstore.Config `mapstructure:"scraper"`
	Breaker   BreakerConfig    `mapstructure:"breaker"`
	Metrics   MetricsConfig    `mapstructure:"metrics"`
}

type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type PathsConfig struct {
	Input   string `mapstructure:"input"`
	Output  string `mapstructure:"output"`
	Metrics string `mapstructure:"metrics"`
	Labels  string `mapstructure:"labels"`
}

// CacheConfig switches the verdict cache. With Enabled and no redis host the
// in-process cache is used.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type TelemetryConfig struct {
	Exporters []telemetry.ExporterConfig `mapstructure:"exporters"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	MetricsPort  int    `mapstructure:"metrics_port"`
	SecretKey    string `mapstructure:"secret_key"`
	MaxBatchSize int    `mapstructure:"max_batch_size"`
}

type BreakerConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxFailures uint32        `mapstructure:"max_failures"`
}

type MetricsConfig struct {
	Enabled                bool `mapstructure:"enabled"`
	EnableProcessCollector bool `mapstructure:"enable_process_collector"`
	EnableGoCollector      bool `mapstructure:"enable_go_collector"`
}

// flagKeys maps command line flags onto config keys. Flags only override
// when set explicitly.
var flagKeys = map[string]string{
	"api-key":  "judgment.api_key",
	"model":    "judgment.model",
	"provider": "judgment.provider",
	"input":    "paths.input",
	"output":   "paths.output",
	"metrics":  "paths.metrics",
	"labels":   "paths.labels",
	"port":     "server.port",
}

// envAliases are environment variables accepted besides the automatic
// SECTION_KEY form.
var envAliases = map[string][]string{
	"judgment.api_key":  {"JUDGMENT_API_KEY", "GEMINI_API_KEY"},
	"server.secret_key": {"SERVER_SECRET_KEY", "SECRET_KEY"},
}

func setDefaults(v *viper.Viper) {
	d := judgment.DefaultConfig()
	v.SetDefault("judgment.provider", d.Provider)
	v.SetDefault("judgment.model", d.Model)
	v.SetDefault("judgment.api_key", "")
	v.SetDefault("judgment.timeout", d.Timeout)
	v.SetDefault("judgment.temperature", d.Temperature)
	v.SetDefault("judgment.top_p", d.TopP)
	v.SetDefault("judgment.top_k", d.TopK)
	v.SetDefault("judgment.candidate_count", d.CandidateCount)
	v.SetDefault("judgment.max_tokens", d.MaxTokens)
	v.SetDefault("judgment.system_prompt", "")
	v.SetDefault("judgment.instructions", []string{})

	v.SetDefault("batch.concurrency", 1)

	v.SetDefault("paths.input", DefaultInputPath)
	v.SetDefault("paths.output", DefaultOutputPath)
	v.SetDefault("paths.metrics", DefaultMetricsPath)
	v.SetDefault("paths.labels", "")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", cache.DefaultTTL)

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.tls", false)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "appverdict")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.secret_key", "")
	v.SetDefault("server.max_batch_size", 100)

	v.SetDefault("scraper.base_url", "")
	v.SetDefault("scraper.timeout", playstore.DefaultTimeout)
	v.SetDefault("scraper.review_count", playstore.DefaultReviewCount)
	v.SetDefault("scraper.country", playstore.DefaultCountry)
	v.SetDefault("scraper.lang", playstore.DefaultLang)
	v.SetDefault("scraper.max_conns", 16)

	v.SetDefault("breaker.timeout", 30*time.Second)
	v.SetDefault("breaker.max_failures", 5)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.enable_process_collector", true)
	v.SetDefault("metrics.enable_go_collector", false)
}

// Load reads config.yaml from configPath (falling back to ./config and .),
// then layers environment variables and explicitly set flags on top. A
// missing config file is not an error.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envAliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
judgment:
  provider: openai
  model: gpt-4o-mini
  timeout: 15s
  system_prompt: You review app listings.
  instructions:
    - Flag impersonation.
    - Ignore marketing claims.
batch:
  concurrency: 4
scraper:
  base_url: http://scraper:3000
breaker:
  max_failures: 3
telemetry:
  exporters:
    - name: kafka
      settings:
        host: broker
        port: "9092"
        topic: verdicts
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Judgment.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Judgment.Model)
	assert.Equal(t, 60*time.Second, cfg.Judgment.Timeout)
	assert.Empty(t, cfg.Judgment.SystemPrompt)
	assert.Empty(t, cfg.Judgment.Instructions)
	assert.Equal(t, 1, cfg.Batch.Concurrency)
	assert.Equal(t, DefaultInputPath, cfg.Paths.Input)
	assert.Equal(t, DefaultOutputPath, cfg.Paths.Output)
	assert.Equal(t, DefaultMetricsPath, cfg.Paths.Metrics)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, uint32(5), cfg.Breaker.MaxFailures)
	assert.Equal(t, "us", cfg.Scraper.Country)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := writeConfig(t, sampleConfig)
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("BATCH_CONCURRENCY", "8")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("model", "gemini-2.0-flash", "")
	flags.String("input", DefaultInputPath, "")
	require.NoError(t, flags.Parse([]string{"--model", "gpt-4o"}))

	cfg, err := Load(dir, flags)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Judgment.Provider)
	assert.Equal(t, "gpt-4o", cfg.Judgment.Model, "explicit flag wins over file")
	assert.Equal(t, 15*time.Second, cfg.Judgment.Timeout)
	assert.Equal(t, "You review app listings.", cfg.Judgment.SystemPrompt)
	assert.Equal(t, []string{"Flag impersonation.", "Ignore marketing claims."}, cfg.Judgment.Instructions)
	assert.Equal(t, "env-key", cfg.Judgment.APIKey)
	assert.Equal(t, 8, cfg.Batch.Concurrency, "env wins over file")
	assert.Equal(t, DefaultInputPath, cfg.Paths.Input, "unset flag leaves the default")
	assert.Equal(t, "http://scraper:3000", cfg.Scraper.BaseURL)
	assert.Equal(t, uint32(3), cfg.Breaker.MaxFailures)

	require.Len(t, cfg.Telemetry.Exporters, 1)
	assert.Equal(t, "kafka", cfg.Telemetry.Exporters[0].Name)
	assert.Equal(t, "verdicts", cfg.Telemetry.Exporters[0].Settings["topic"])
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, "judgment: [unterminated")
	_, err := Load(dir, nil)
	assert.ErrorContains(t, err, "error reading config file")
}

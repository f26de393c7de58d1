package main

import (
	"strings"

	"github.com/NeuralTrust/AppVerdict/pkg/app/batch"
	"github.com/NeuralTrust/AppVerdict/pkg/app/features"
	"github.com/NeuralTrust/AppVerdict/pkg/app/judgment"
	"github.com/NeuralTrust/AppVerdict/pkg/config"
	"github.com/NeuralTrust/AppVerdict/pkg/domain"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/cache"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/database"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/httpx"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/playstore"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/providers/factory"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/repository"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/telemetry"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/telemetry/kafka"
	"github.com/NeuralTrust/AppVerdict/pkg/version"
	"github.com/sirupsen/logrus"

	_ "github.com/NeuralTrust/AppVerdict/pkg/infra/migrations"
)

const exportWorkers = 2

var newProviderLocator = factory.NewProviderLocator

// components is the wired pipeline shared by the CLI commands and the API
// server. scraper and repository stay nil when not configured.
type components struct {
	provider     providers.Client
	orchestrator batch.Orchestrator
	scraper      playstore.Client
	repository   verdict.Repository
	closers      []func()
}

func (c *components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func buildComponents(cfg *config.Config, logger *logrus.Logger, progress batch.ProgressFunc) (*components, error) {
	if cfg.Judgment.APIKey == "" && !strings.EqualFold(cfg.Judgment.Provider, factory.ProviderBedrock) {
		return nil, domain.ErrMissingAPIKey
	}
	provider, err := newProviderLocator().Get(cfg.Judgment.Provider)
	if err != nil {
		return nil, err
	}

	c := &components{provider: provider}
	ok := false
	defer func() {
		if !ok {
			c.Close()
		}
	}()

	judgeOpts := []judgment.Option{
		judgment.WithCircuitBreaker(httpx.NewCircuitBreaker("judgment", cfg.Breaker.Timeout, cfg.Breaker.MaxFailures, logger)),
	}
	if cfg.Cache.Enabled {
		verdictCache, err := c.buildCache(cfg, logger)
		if err != nil {
			return nil, err
		}
		judgeOpts = append(judgeOpts, judgment.WithCache(verdictCache))
	}
	judge := judgment.NewClient(logger, provider, cfg.Judgment, judgeOpts...)

	var extractorOpts []features.Option
	if cfg.Scraper.BaseURL != "" {
		httpOpts := []httpx.FastHTTPClientOption{
			httpx.WithTimeout(cfg.Scraper.Timeout),
			httpx.WithUserAgent(version.UserAgent()),
		}
		if cfg.Scraper.MaxConns > 0 {
			httpOpts = append(httpOpts, httpx.WithMaxConnsPerHost(cfg.Scraper.MaxConns))
		}
		httpClient := httpx.NewFastHTTPClient(httpOpts...)
		scraperBreaker := httpx.NewCircuitBreaker("scraper", cfg.Breaker.Timeout, cfg.Breaker.MaxFailures, logger)
		c.scraper, err = playstore.NewClient(logger, cfg.Scraper, httpClient, scraperBreaker)
		if err != nil {
			return nil, err
		}
		extractorOpts = append(extractorOpts, features.WithDeveloperDirectory(c.scraper))
	}
	extractor := features.NewExtractor(logger, extractorOpts...)

	var sinks []verdict.Sink
	if cfg.Database.Enabled {
		db, err := database.NewDB(logger, &cfg.Database)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() {
			if err := db.Close(); err != nil {
				logger.WithError(err).Warn("failed to close database")
			}
		})
		c.repository = repository.NewVerdictRepository(db.DB)
		sinks = append(sinks, c.repository)
	}

	exporters := telemetry.NewExporterLocator(
		telemetry.WithExporter(kafka.ExporterName, kafka.NewKafkaExporter()),
	).Build(logger, cfg.Telemetry.Exporters)
	if len(exporters) > 0 {
		exportWorker := telemetry.NewWorker(logger, exporters, telemetry.DefaultQueueSize)
		exportWorker.StartWorkers(exportWorkers)
		sinks = append(sinks, exportWorker)
		c.closers = append(c.closers, exportWorker.Shutdown)
	}

	c.orchestrator = batch.NewOrchestrator(
		logger,
		extractor,
		judge,
		batch.WithConcurrency(cfg.Batch.Concurrency),
		batch.WithSinks(sinks...),
		batch.WithProgress(progress),
	)
	ok = true
	return c, nil
}

// buildCache prefers redis when a host is configured and falls back to the
// in-process cache otherwise.
func (c *components) buildCache(cfg *config.Config, logger *logrus.Logger) (cache.VerdictCache, error) {
	if cfg.Redis.Host == "" {
		return cache.NewMemoryCache(cfg.Cache.TTL), nil
	}
	client, err := cache.NewRedisClient(cfg.Redis, logger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, func() {
		if err := client.Close(); err != nil {
			logger.WithError(err).Warn("failed to close redis client")
		}
	})
	return cache.NewRedisCache(client, cfg.Cache.TTL, logger), nil
}

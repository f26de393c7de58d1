package main

import (
	"context"
	"fmt"
	"io"

	"github.com/NeuralTrust/AppVerdict/pkg/app/judgment"
	"github.com/NeuralTrust/AppVerdict/pkg/config"
	handlers "github.com/NeuralTrust/AppVerdict/pkg/handlers/http"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/jwt"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/prometheus"
	"github.com/NeuralTrust/AppVerdict/pkg/middleware"
	"github.com/NeuralTrust/AppVerdict/pkg/server"
	"github.com/sirupsen/logrus"
)

func runServe(ctx context.Context, cfg *config.Config, logger *logrus.Logger) int {
	if cfg.Metrics.Enabled {
		prometheus.Initialize(prometheus.MetricsConfig{
			EnableProcessCollector: cfg.Metrics.EnableProcessCollector,
			EnableGoCollector:      cfg.Metrics.EnableGoCollector,
		})
	}

	jwtManager, err := jwt.NewJwtManager(jwt.Config{SecretKey: cfg.Server.SecretKey})
	if err != nil {
		logger.WithError(err).Error("failed to initialize API auth")
		return exitError
	}

	comps, err := buildComponents(cfg, logger, nil)
	if err != nil {
		logger.WithError(err).Error("failed to initialize pipeline")
		return exitError
	}
	defer comps.Close()

	if err := judgment.Verify(ctx, comps.provider, cfg.Judgment); err != nil {
		logger.WithError(err).Warn("judgment provider check failed; verdicts will fall back until it recovers")
	}

	srv := server.NewAPIServer(server.APIServerDI{
		MiddlewareTransport: middleware.Transport{
			AuthMiddleware:         middleware.NewAuthMiddleware(logger, jwtManager),
			MetricsMiddleware:      middleware.NewMetricsMiddleware(),
			PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		},
		HandlerTransport: handlers.HandlerTransport{
			AnalyzeHandler:      handlers.NewAnalyzeHandler(logger, comps.orchestrator),
			AnalyzeBatchHandler: handlers.NewAnalyzeBatchHandler(logger, comps.orchestrator, cfg.Server.MaxBatchSize),
			EvaluateHandler:     handlers.NewEvaluateHandler(logger),
			GetRunHandler:       handlers.NewGetRunHandler(logger, comps.repository),
			GetVersionHandler:   handlers.NewGetVersionHandler(),
		},
		Config: cfg,
		Logger: logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.WithError(err).Error("API server stopped")
			return exitError
		}
		return exitOK
	case <-ctx.Done():
		logger.Info("shutting down API server")
		if err := srv.Shutdown(); err != nil {
			logger.WithError(err).Error("failed to shut down API server")
			return exitError
		}
		return exitOK
	}
}

func runToken(cfg *config.Config, subject string, out io.Writer) int {
	jwtManager, err := jwt.NewJwtManager(jwt.Config{SecretKey: cfg.Server.SecretKey})
	if err != nil {
		_, _ = fmt.Fprintf(out, "Error: %v\n", err)
		return exitError
	}
	token, err := jwtManager.CreateToken(subject)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Error: %v\n", err)
		return exitError
	}
	_, _ = fmt.Fprintln(out, token)
	return exitOK
}

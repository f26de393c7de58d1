package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/config"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/prometheus"
	"github.com/NeuralTrust/AppVerdict/pkg/middleware"
	"github.com/NeuralTrust/AppVerdict/pkg/server/router"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	HealthPath  = "/health"
	MetricsPath = "/metrics"
)

type Server interface {
	Run() error
	Shutdown() error
}

type BaseServer struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Router     *fiber.App
	metricsApp *fiber.App
}

func NewBaseServer(cfg *config.Config, logger *logrus.Logger, recoverMiddleware middleware.Middleware) *BaseServer {
	r := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnablePrintRoutes:     false,
		BodyLimit:             16 * 1024 * 1024,
		// Batches wait on one remote call per record.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	})
	r.Server().NoDefaultServerHeader = true
	if recoverMiddleware != nil {
		r.Use(recoverMiddleware.Middleware())
	}

	s := &BaseServer{
		Config: cfg,
		Logger: logger,
		Router: r,
	}
	s.setupHealthCheck()
	return s
}

func (s *BaseServer) setupHealthCheck() {
	s.Router.Get(HealthPath, func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

func (s *BaseServer) WithRouters(routers ...router.ServerRouter) *BaseServer {
	for _, r := range routers {
		if err := r.BuildRoutes(s.Router); err != nil {
			s.Logger.WithError(err).Error("failed to build routes")
		}
	}
	return s
}

// MetricsHandler exposes the service registry in the Prometheus text format.
func MetricsHandler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(prometheus.Gatherer(), promhttp.HandlerOpts{}),
	)
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}

// setupMetricsEndpoint mounts /metrics on the API router when the metrics
// port is unset or equal to the API port, and on a separate listener
// otherwise.
func (s *BaseServer) setupMetricsEndpoint() {
	if !s.Config.Metrics.Enabled {
		s.Logger.Info("prometheus metrics are disabled by configuration")
		return
	}
	prometheus.Initialize(prometheus.MetricsConfig{
		EnableProcessCollector: s.Config.Metrics.EnableProcessCollector,
		EnableGoCollector:      s.Config.Metrics.EnableGoCollector,
	})

	port := s.Config.Server.MetricsPort
	if port == 0 || port == s.Config.Server.Port {
		s.Router.Get(MetricsPath, MetricsHandler())
		return
	}
	if s.metricsApp != nil {
		return
	}

	s.metricsApp = fiber.New(fiber.Config{DisableStartupMessage: true})
	s.metricsApp.Use(recover.New())
	s.metricsApp.Get(MetricsPath, MetricsHandler())

	go func() {
		addr := fmt.Sprintf(":%d", port)
		if err := s.metricsApp.Listen(addr); err != nil {
			if !strings.Contains(err.Error(), "address already in use") {
				s.Logger.WithError(err).Error("failed to start metrics server")
			}
		}
	}()
}

func (s *BaseServer) shutdownMetrics() {
	if s.metricsApp != nil {
		if err := s.metricsApp.Shutdown(); err != nil {
			s.Logger.WithError(err).Warn("failed to stop metrics server")
		}
	}
}

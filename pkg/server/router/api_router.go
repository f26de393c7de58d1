package router

import (
	handlers "github.com/NeuralTrust/AppVerdict/pkg/handlers/http"
	"github.com/NeuralTrust/AppVerdict/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h.AnalyzeHandler == nil || h.AnalyzeBatchHandler == nil || h.EvaluateHandler == nil {
		return ErrMissingHandler
	}

	v1 := router.Group("/v1")
	if m := r.middlewareTransport; m != nil {
		if m.MetricsMiddleware != nil {
			v1.Use(m.MetricsMiddleware.Middleware())
		}
		if m.AuthMiddleware != nil {
			v1.Use(m.AuthMiddleware.Middleware())
		}
	}

	v1.Post("/analyze", h.AnalyzeHandler.Handle)
	v1.Post("/analyze/batch", h.AnalyzeBatchHandler.Handle)
	v1.Post("/evaluate", h.EvaluateHandler.Handle)
	if h.GetRunHandler != nil {
		v1.Get("/runs/:run_id", h.GetRunHandler.Handle)
	}
	if h.GetVersionHandler != nil {
		router.Get("/version", h.GetVersionHandler.Handle)
	}
	return nil
}

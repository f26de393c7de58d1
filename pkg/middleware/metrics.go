package middleware

import (
	"strconv"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
)

type metricsMiddleware struct{}

func NewMetricsMiddleware() Middleware {
	return &metricsMiddleware{}
}

// Middleware labels by the matched route pattern, never the raw path, so
// path parameters cannot blow up label cardinality.
func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		prometheus.HTTPRequestsTotal.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		prometheus.HTTPRequestLatency.WithLabelValues(route, c.Method()).
			Observe(float64(time.Since(start).Milliseconds()))
		return err
	}
}

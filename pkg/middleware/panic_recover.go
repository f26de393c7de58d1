package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type panicRecoverMiddleware struct {
	logger *logrus.Logger
}

// NewPanicRecoverMiddleware answers 500 when a handler panics.
func NewPanicRecoverMiddleware(logger *logrus.Logger) Middleware {
	return &panicRecoverMiddleware{logger: logger}
}

func (m *panicRecoverMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			m.logger.WithFields(logrus.Fields{
				"panic":  r,
				"method": c.Method(),
				"route":  c.Route().Path,
				"stack":  string(debug.Stack()),
			}).Error("recovered from handler panic")
			err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}()
		return c.Next()
	}
}

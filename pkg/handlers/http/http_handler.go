package http

import "github.com/gofiber/fiber/v2"

const (
	ErrInvalidJsonPayload = "invalid JSON payload"
	ErrInternal           = "internal server error"
)

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	AnalyzeHandler      Handler
	AnalyzeBatchHandler Handler
	EvaluateHandler     Handler
	GetRunHandler       Handler
	GetVersionHandler   Handler
}

package server

import (
	"fmt"

	"github.com/NeuralTrust/AppVerdict/pkg/config"
	handlers "github.com/NeuralTrust/AppVerdict/pkg/handlers/http"
	"github.com/NeuralTrust/AppVerdict/pkg/middleware"
	"github.com/NeuralTrust/AppVerdict/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	APIServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	APIServer struct {
		*BaseServer
	}
)

func NewAPIServer(di APIServerDI) *APIServer {
	base := NewBaseServer(di.Config, di.Logger, di.MiddlewareTransport.PanicRecoverMiddleware)
	base.setupMetricsEndpoint()
	base.WithRouters(router.NewAPIRouter(&di.MiddlewareTransport, di.HandlerTransport))
	return &APIServer{BaseServer: base}
}

func (s *APIServer) Run() error {
	addr := fmt.Sprintf(":%d", s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting API server")
	return s.Router.Listen(addr)
}

func (s *APIServer) Shutdown() error {
	s.shutdownMetrics()
	return s.Router.Shutdown()
}

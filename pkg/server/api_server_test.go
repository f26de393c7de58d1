package server

import (
	"bytes"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NeuralTrust/AppVerdict/pkg/app/batch"
	batchMocks "github.com/NeuralTrust/AppVerdict/pkg/app/batch/mocks"
	"github.com/NeuralTrust/AppVerdict/pkg/config"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	handlers "github.com/NeuralTrust/AppVerdict/pkg/handlers/http"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/jwt"
	"github.com/NeuralTrust/AppVerdict/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*APIServer, *batchMocks.Orchestrator, string) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mgr, err := jwt.NewJwtManager(jwt.Config{SecretKey: "server-secret"})
	require.NoError(t, err)
	token, err := mgr.CreateToken("tester")
	require.NoError(t, err)

	orchestrator := batchMocks.NewOrchestrator(t)
	cfg := &config.Config{
		Server:  config.ServerConfig{Port: 8080, MetricsPort: 8080},
		Metrics: config.MetricsConfig{Enabled: true},
	}

	srv := NewAPIServer(APIServerDI{
		MiddlewareTransport: middleware.Transport{
			AuthMiddleware:         middleware.NewAuthMiddleware(logger, mgr),
			MetricsMiddleware:      middleware.NewMetricsMiddleware(),
			PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		},
		HandlerTransport: handlers.HandlerTransport{
			AnalyzeHandler:      handlers.NewAnalyzeHandler(logger, orchestrator),
			AnalyzeBatchHandler: handlers.NewAnalyzeBatchHandler(logger, orchestrator, 10),
			EvaluateHandler:     handlers.NewEvaluateHandler(logger),
			GetRunHandler:       handlers.NewGetRunHandler(logger, nil),
			GetVersionHandler:   handlers.NewGetVersionHandler(),
		},
		Config: cfg,
		Logger: logger,
	})
	return srv, orchestrator, token
}

func TestAPIServer_PublicRoutes(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, path := range []string{HealthPath, "/version", MetricsPath} {
		resp, err := srv.Router.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestAPIServer_MetricsExposition(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := srv.Router.Test(httptest.NewRequest("GET", MetricsPath, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "appverdict_"), "service metrics are exposed")
}

func TestAPIServer_V1RequiresToken(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest("POST", "/v1/evaluate", bytes.NewReader([]byte(`{"true_labels":[1],"pred_labels":[1]}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Router.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAPIServer_AuthenticatedBatch(t *testing.T) {
	srv, orchestrator, token := newTestServer(t)
	orchestrator.EXPECT().AnalyzeRun(mock.Anything, mock.Anything).Return(batch.Run{
		ID:      uuid.New(),
		Reports: []verdict.Report{verdict.NewReport(verdict.Verdict{Type: verdict.Genuine}, "a", "A")},
		Summary: verdict.Summary{Total: 1, Genuine: 1},
	}).Once()

	req := httptest.NewRequest("POST", "/v1/analyze/batch", bytes.NewReader([]byte(`[{"appId":"a"}]`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Router.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

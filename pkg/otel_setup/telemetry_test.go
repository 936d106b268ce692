package otel_setup

import (
	"context"
	"encoding/json"
	"github.com/david00medina/opentelemetry-donet/pkg/config"
	"github.com/david00medina/opentelemetry-donet/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type collectedRequest struct {
	method string
	path   string
	body   map[string]any
}

type recordingCollector struct {
	mu       sync.Mutex
	requests []collectedRequest
}

func (rc *recordingCollector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	rc.mu.Lock()
	rc.requests = append(rc.requests, collectedRequest{method: r.Method, path: r.URL.Path, body: body})
	rc.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (rc *recordingCollector) byPath(path string) []collectedRequest {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	var matching []collectedRequest
	for _, req := range rc.requests {
		if req.path == path {
			matching = append(matching, req)
		}
	}
	return matching
}

func newTestTelemetry(t *testing.T, collector *recordingCollector) *Telemetry {
	server := httptest.NewServer(collector)
	t.Cleanup(server.Close)

	ic, err := NewIntegrationClient(config.IntegrationConfig{
		BaseURL:     server.URL,
		PathPrefix:  "api/integrations",
		Timeout:     time.Second,
		Compression: "none",
	})
	require.Nil(t, err)
	res, err := NewResource(context.Background(), "dice-server", "1.0.0")
	require.Nil(t, err)
	telemetry, err := NewTelemetry(context.Background(), "dice-server", res, ic, zap.NewNop(), WithSyncExport())
	require.Nil(t, err)
	return telemetry
}

func TestTelemetry(t *testing.T) {
	t.Run("Exports spans and bridged application logs to the collector", func(t *testing.T) {
		collector := &recordingCollector{}
		telemetry := newTestTelemetry(t, collector)
		core, consoleLogs := observer.New(zapcore.InfoLevel)
		logger := telemetry.AppLogger(zap.New(core))

		ctx, span := telemetry.TracerProvider.Tracer("dice-server").Start(context.Background(), "RollDice")
		ctx = logging.WithCorrelationId(ctx, "c-1")
		logger.Info("bob is rolling the dice", logging.Context(ctx), logging.CorrelationId(ctx))
		span.End()
		require.Nil(t, telemetry.Shutdown(context.Background()))

		assert.Equal(t, 1, consoleLogs.FilterMessage("bob is rolling the dice").Len())

		logs := collector.byPath("/api/integrations/logs")
		require.Len(t, logs, 1)
		assert.Equal(t, "bob is rolling the dice", logs[0].body["otel_body"])
		assert.Equal(t, "c-1", logs[0].body["otel_correlation_id"])
		assert.Equal(t, "info", logs[0].body["otel_severity_text"])
		assert.Equal(t, span.SpanContext().TraceID().String(), logs[0].body["otel_trace_id"])

		traces := collector.byPath("/api/integrations/trace")
		require.Len(t, traces, 1)
		assert.Equal(t, http.MethodPost, traces[0].method)
		assert.Equal(t, "RollDice", traces[0].body["otel_name"])
		assert.Len(t, collector.byPath("/api/integrations/span/completed"), 1)
	})

	t.Run("Rejects an invalid collector configuration", func(t *testing.T) {
		_, err := NewIntegrationClient(config.IntegrationConfig{BaseURL: "https://collector.local", Compression: "zstd"})
		assert.NotNil(t, err)
	})
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	logModel "github.com/david00medina/opentelemetry-donet/pkg/log/model"
	traceModel "github.com/david00medina/opentelemetry-donet/pkg/trace/model"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/goleak"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

type receivedRequest struct {
	method          string
	path            string
	contentEncoding string
	header          http.Header
	body            map[string]any
}

type fakeCollector struct {
	mu       sync.Mutex
	requests []receivedRequest
	status   int
}

func (fc *fakeCollector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var reader io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		gr, err := gzip.NewReader(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer gr.Close()
		reader = gr
	}
	var body map[string]any
	_ = json.NewDecoder(reader).Decode(&body)

	fc.mu.Lock()
	fc.requests = append(fc.requests, receivedRequest{
		method:          r.Method,
		path:            r.URL.Path,
		contentEncoding: r.Header.Get("Content-Encoding"),
		header:          r.Header.Clone(),
		body:            body,
	})
	status := fc.status
	fc.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
}

func (fc *fakeCollector) received() []receivedRequest {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]receivedRequest(nil), fc.requests...)
}

func newTestClient(t *testing.T, fc *fakeCollector, opts ...Option) *IntegrationClientImpl {
	server := httptest.NewServer(fc)
	httpClient := NewHTTPClient(DefaultTimeout)
	t.Cleanup(func() {
		httpClient.CloseIdleConnections()
		server.Close()
	})
	c, err := NewIntegrationClientImpl(httpClient, server.URL, opts...)
	require.Nil(t, err)
	return c
}

func newSpanValues(t *testing.T, parent trace.SpanID, traceId trace.TraceID) traceModel.SpanValues {
	values, err := traceModel.NewSpanValues(traceModel.SpanRecord{
		TraceId:      traceId,
		SpanId:       trace.SpanID{1, 2, 3, 4, 5, 6, 7, 8},
		ParentSpanId: parent,
		Name:         "RollDice",
		Status:       traceModel.StatusOk,
	})
	require.Nil(t, err)
	return values
}

func TestIntegrationClientImpl_SendLog(t *testing.T) {
	t.Run("Posts the log request to the logs endpoint", func(t *testing.T) {
		fc := &fakeCollector{}
		c := newTestClient(t, fc)
		values, err := logModel.NewLogValues(logModel.LogRecord{SeverityText: "INFO", Body: "hello"})
		require.Nil(t, err)

		err = c.SendLog(context.Background(), values)
		require.Nil(t, err)
		require.Len(t, fc.received(), 1)
		assert.Equal(t, http.MethodPost, fc.received()[0].method)
		assert.Equal(t, "/api/integrations/logs", fc.received()[0].path)
		assert.Equal(t, "hello", fc.received()[0].body["otel_body"])
		assert.Equal(t, "application/json; charset=utf-8", fc.received()[0].header.Get("Content-Type"))
	})

	t.Run("Returns a status error on a non success response", func(t *testing.T) {
		fc := &fakeCollector{status: http.StatusServiceUnavailable}
		c := newTestClient(t, fc)

		err := c.SendLog(context.Background(), logModel.LogValues{})
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
		assert.Equal(t, http.MethodPost, statusErr.Method)
	})

	t.Run("Uses the legacy prefix when configured", func(t *testing.T) {
		fc := &fakeCollector{}
		c := newTestClient(t, fc, WithPathPrefix("/"+LegacyPathPrefix+"/"))

		require.Nil(t, c.SendLog(context.Background(), logModel.LogValues{}))
		assert.Equal(t, "/api/integration/logs", fc.received()[0].path)
	})

	t.Run("Compresses the body and sets custom headers when configured", func(t *testing.T) {
		fc := &fakeCollector{}
		c := newTestClient(t, fc, WithCompression(CompressionGzip), WithHeaders(map[string]string{"X-Api-Key": "secret"}))
		values, err := logModel.NewLogValues(logModel.LogRecord{Body: "zipped"})
		require.Nil(t, err)

		require.Nil(t, c.SendLog(context.Background(), values))
		assert.Equal(t, "gzip", fc.received()[0].contentEncoding)
		assert.Equal(t, "secret", fc.received()[0].header.Get("X-Api-Key"))
		assert.Equal(t, "zipped", fc.received()[0].body["otel_body"])
	})

	t.Run("Custom headers cannot override the body framing", func(t *testing.T) {
		fc := &fakeCollector{}
		c := newTestClient(t, fc, WithHeaders(map[string]string{
			"Content-Encoding": "gzip",
			"Content-Type":     "text/plain",
		}))
		values, err := logModel.NewLogValues(logModel.LogRecord{Body: "plain"})
		require.Nil(t, err)

		require.Nil(t, c.SendLog(context.Background(), values))
		assert.Empty(t, fc.received()[0].contentEncoding)
		assert.Equal(t, "application/json; charset=utf-8", fc.received()[0].header.Get("Content-Type"))
		assert.Equal(t, "plain", fc.received()[0].body["otel_body"])
	})
}

func TestIntegrationClientImpl_SendTraceLifecycle(t *testing.T) {
	traceId := trace.TraceID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

	t.Run("Posts a new trace request for a root span", func(t *testing.T) {
		fc := &fakeCollector{}
		c := newTestClient(t, fc)

		require.Nil(t, c.SendTraceLifecycle(context.Background(), newSpanValues(t, trace.SpanID{}, traceId)))
		require.Len(t, fc.received(), 1)
		assert.Equal(t, http.MethodPost, fc.received()[0].method)
		assert.Equal(t, "/api/integrations/trace", fc.received()[0].path)
		assert.Equal(t, float64(0), fc.received()[0].body["otel_status_code"])
		_, hasTraceId := fc.received()[0].body["otel_trace_id"]
		assert.False(t, hasTraceId)
	})

	t.Run("Puts an existing trace request for a child span", func(t *testing.T) {
		fc := &fakeCollector{}
		c := newTestClient(t, fc)

		require.Nil(t, c.SendTraceLifecycle(context.Background(), newSpanValues(t, trace.SpanID{9}, traceId)))
		require.Len(t, fc.received(), 1)
		assert.Equal(t, http.MethodPut, fc.received()[0].method)
		assert.Equal(t, "/api/integrations/trace", fc.received()[0].path)
		assert.Equal(t, traceId.String(), fc.received()[0].body["otel_trace_id"])
	})

	t.Run("Child span without a trace id fails before any request", func(t *testing.T) {
		fc := &fakeCollector{}
		c := newTestClient(t, fc)

		err := c.SendTraceLifecycle(context.Background(), newSpanValues(t, trace.SpanID{9}, trace.TraceID{}))
		assert.ErrorIs(t, err, traceModel.ErrMissingTraceId)
		assert.Empty(t, fc.received())
	})
}

func TestIntegrationClientImpl_NotifySpanCompletion(t *testing.T) {
	t.Run("Posts the completion request with the span status", func(t *testing.T) {
		fc := &fakeCollector{}
		c := newTestClient(t, fc)

		require.Nil(t, c.NotifySpanCompletion(context.Background(), newSpanValues(t, trace.SpanID{}, trace.TraceID{})))
		require.Len(t, fc.received(), 1)
		assert.Equal(t, http.MethodPost, fc.received()[0].method)
		assert.Equal(t, "/api/integrations/span/completed", fc.received()[0].path)
		assert.Equal(t, "0102030405060708", fc.received()[0].body["otel_span_id"])
		assert.Equal(t, float64(1), fc.received()[0].body["otel_span_status_code"])
	})
}

func TestNewIntegrationClientImpl(t *testing.T) {
	t.Run("Rejects relative base urls", func(t *testing.T) {
		_, err := NewIntegrationClientImpl(NewHTTPClient(0), "collector.local")
		assert.ErrorIs(t, err, ErrInvalidBaseURL)
	})

	t.Run("Rejects unknown compression", func(t *testing.T) {
		_, err := NewIntegrationClientImpl(NewHTTPClient(0), "https://collector.local", WithCompression("brotli"))
		assert.ErrorIs(t, err, ErrUnsupportedCompression)
	})

	t.Run("Resolves endpoints under a base path", func(t *testing.T) {
		c, err := NewIntegrationClientImpl(NewHTTPClient(0), "https://collector.local/tenant-a")
		require.Nil(t, err)
		assert.Equal(t, "https://collector.local/tenant-a/api/integrations/span/completed", c.endpoint(spanCompletedPath))
	})

	t.Run("Defaults to a ten second timeout", func(t *testing.T) {
		assert.Equal(t, DefaultTimeout, NewHTTPClient(0).Timeout)
	})
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	logModel "github.com/david00medina/opentelemetry-donet/pkg/log/model"
	traceModel "github.com/david00medina/opentelemetry-donet/pkg/trace/model"
	"github.com/klauspost/compress/gzip"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultTimeout = 10 * time.Second
const DefaultPathPrefix = "api/integrations"

// LegacyPathPrefix is the route prefix used by older collector deployments.
const LegacyPathPrefix = "api/integration"

const (
	CompressionNone = "none"
	CompressionGzip = "gzip"
)

const (
	logsPath          = "logs"
	tracePath         = "trace"
	spanCompletedPath = "span/completed"
)

type IntegrationClient interface {
	// SendLog posts a log request to <prefix>/logs
	SendLog(ctx context.Context, values logModel.LogValues) error
	// SendTraceLifecycle posts a new-trace request for root spans and puts an existing-trace request otherwise,
	// both to <prefix>/trace
	SendTraceLifecycle(ctx context.Context, values traceModel.SpanValues) error
	// NotifySpanCompletion posts a completion request to <prefix>/span/completed
	NotifySpanCompletion(ctx context.Context, values traceModel.SpanValues) error
}

type IntegrationClientImpl struct {
	httpClient  *http.Client
	baseURL     *url.URL
	pathPrefix  string
	compression string
	headers     map[string]string
}

type Option func(*IntegrationClientImpl)

func WithPathPrefix(prefix string) Option {
	return func(c *IntegrationClientImpl) {
		c.pathPrefix = strings.Trim(prefix, "/")
	}
}

func WithCompression(compression string) Option {
	return func(c *IntegrationClientImpl) {
		c.compression = compression
	}
}

func WithHeaders(headers map[string]string) Option {
	return func(c *IntegrationClientImpl) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// NewHTTPClient builds the process wide client shared by every export. http.Client pools
// connections and is safe for concurrent use.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func NewIntegrationClientImpl(
	httpClient *http.Client,
	baseURL string,
	opts ...Option,
) (*IntegrationClientImpl, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid integration base url %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("integration base url %q must be absolute: %w", baseURL, ErrInvalidBaseURL)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	c := &IntegrationClientImpl{
		httpClient:  httpClient,
		baseURL:     parsed,
		pathPrefix:  DefaultPathPrefix,
		compression: CompressionNone,
		headers:     map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	switch c.compression {
	case "", CompressionNone:
		c.compression = CompressionNone
	case CompressionGzip:
	default:
		return nil, fmt.Errorf("compression %q: %w", c.compression, ErrUnsupportedCompression)
	}
	return c, nil
}

func (c *IntegrationClientImpl) SendLog(ctx context.Context, values logModel.LogValues) error {
	return c.send(ctx, http.MethodPost, logsPath, values.ToRequest())
}

func (c *IntegrationClientImpl) SendTraceLifecycle(ctx context.Context, values traceModel.SpanValues) error {
	if values.IsRoot() {
		return c.send(ctx, http.MethodPost, tracePath, values.ToNewTraceRequest())
	}
	req, err := values.ToExistingTraceRequest()
	if err != nil {
		return err
	}
	return c.send(ctx, http.MethodPut, tracePath, req)
}

func (c *IntegrationClientImpl) NotifySpanCompletion(ctx context.Context, values traceModel.SpanValues) error {
	return c.send(ctx, http.MethodPost, spanCompletedPath, values.ToCompletionRequest())
}

// CloseIdleConnections releases pooled connections, used when the exporters shut down.
func (c *IntegrationClientImpl) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

func (c *IntegrationClientImpl) endpoint(path string) string {
	relative := &url.URL{Path: c.pathPrefix + "/" + path}
	if c.pathPrefix == "" {
		relative.Path = path
	}
	return c.baseURL.ResolveReference(relative).String()
}

func (c *IntegrationClientImpl) send(ctx context.Context, method string, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request body: %w", path, err)
	}
	contentEncoding := ""
	if c.compression == CompressionGzip {
		body, err = gzipBody(body)
		if err != nil {
			return err
		}
		contentEncoding = CompressionGzip
	}

	endpoint := c.endpoint(path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request for %s: %w", method, endpoint, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	// the body framing always comes from the client, never from custom headers
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Del("Content-Encoding")
	if contentEncoding != "" {
		req.Header.Set("Content-Encoding", contentEncoding)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s request to %s: %w", method, endpoint, err)
	}
	defer res.Body.Close()
	// drain so the connection can go back to the pool
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Method: method, URL: endpoint, StatusCode: res.StatusCode}
	}
	return nil
}

func gzipBody(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(body); err != nil {
		return nil, fmt.Errorf("failed to gzip request body: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return buf.Bytes(), nil
}

// StatusError is returned when the collector answers with a non-success status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
}

var (
	ErrInvalidBaseURL         = errors.New("invalid integration base url")
	ErrUnsupportedCompression = errors.New("unsupported compression")
)

package model

import (
	"github.com/david00medina/opentelemetry-donet/pkg/attribute_lookup"
	"go.opentelemetry.io/otel/trace"
)

// LogRecord is a finished log record as handed over by a telemetry pipeline.
// Severity, timestamps and trace context are already resolved.
type LogRecord struct {
	TraceId        trace.TraceID
	SpanId         trace.SpanID
	SeverityText   string
	SeverityNumber int // 0 when unspecified
	// FormattedMessage is the rendered message text, when the pipeline has one.
	FormattedMessage *string
	Body             any
	EventName        string
	Attributes       []attribute_lookup.KeyValue
	StateValues      []attribute_lookup.KeyValue
}

var (
	CorrelationIdKeys       = []string{"correlation.id", "CorrelationId", "app.correlation_id"}
	TenantIdKeys            = []string{"tenant.id", "TenantId"}
	RowsCountKeys           = []string{"db.rows", "rows.count"}
	HttpRequestMethodKeys   = []string{"http.request.method", "http.method"}
	HttpRequestUrlKeys      = []string{"http.request.url", "url.full", "http.url"}
	HttpRequestRouteKeys    = []string{"http.request.route", "http.route"}
	HttpRequestDomainKeys   = []string{"http.request.domain", "server.address", "url.domain"}
	HttpRequestSchemeKeys   = []string{"http.request.scheme", "url.scheme"}
	HttpRequestPortKeys     = []string{"http.request.port", "server.port"}
	HttpRequestHeadersKeys  = []string{"http.request.headers", "request.headers"}
	HttpRequestBodyKeys     = []string{"http.request.body", "request.body"}
	HttpResponseCodeKeys    = []string{"http.response.status_code", "http.status_code"}
	HttpResponseTimeMsKeys  = []string{"http.response.time_ms", "http.server.duration"}
	HttpResponseMessageKeys = []string{"http.response.message", "response.message"}
	HttpResponseHeadersKeys = []string{"http.response.headers", "response.headers"}
)

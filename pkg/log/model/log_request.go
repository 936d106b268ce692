package model

// LogRequest is the body of POST <prefix>/logs. Field names are fixed by the collector.
type LogRequest struct {
	TraceId                 *string  `json:"otel_trace_id"`
	SpanId                  *string  `json:"otel_span_id"`
	SeverityText            *string  `json:"otel_severity_text"`
	SeverityNumber          *int     `json:"otel_severity_number"`
	Body                    *string  `json:"otel_body"`
	AttributesJson          *string  `json:"otel_attributes_json"`
	EventName               *string  `json:"otel_event_name"`
	CorrelationId           *string  `json:"otel_correlation_id"`
	TenantId                *string  `json:"otel_tenant_id"`
	RowsCount               *int64   `json:"otel_rows_count"`
	HttpRequestMethod       *string  `json:"otel_http_request_method"`
	HttpRequestUrl          *string  `json:"otel_http_request_url"`
	HttpRequestRoute        *string  `json:"otel_http_request_route"`
	HttpRequestDomain       *string  `json:"otel_http_request_domain"`
	HttpRequestScheme       *string  `json:"otel_http_request_scheme"`
	HttpRequestPort         *int     `json:"otel_http_request_port"`
	HttpRequestHeadersJson  *string  `json:"otel_http_request_headers_json"`
	HttpRequestBody         *string  `json:"otel_http_request_body"`
	HttpResponseCode        *int     `json:"otel_http_response_code"`
	HttpResponseTimeMs      *float64 `json:"otel_http_response_time_ms"`
	HttpResponseMessage     *string  `json:"otel_http_response_message"`
	HttpResponseHeadersJson *string  `json:"otel_http_response_headers_json"`
}

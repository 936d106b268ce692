package model

// SpanCompletionRequest is the body of POST <prefix>/span/completed.
type SpanCompletionRequest struct {
	SpanId        string  `json:"otel_span_id"`
	StatusCode    int     `json:"otel_span_status_code"`
	StatusMessage *string `json:"otel_span_status_message"`
}

// NewTraceSpanRequest is the body of POST <prefix>/trace, sent for spans without a parent.
type NewTraceSpanRequest struct {
	ParentSpanId          *string `json:"otel_parent_span_id"`
	ResourceName          *string `json:"otel_resource_name"`
	Name                  *string `json:"otel_name"`
	StatusMessage         *string `json:"otel_status_message"`
	AttributesJson        *string `json:"otel_attributes_json"`
	CorrelationId         *string `json:"otel_correlation_id"`
	TenantId              *string `json:"otel_tenant_id"`
	TeamName              *string `json:"otel_team_name"`
	ResponsibleUser       *string `json:"otel_responsible_user"`
	MinimumTimeoutSeconds *int    `json:"otel_minimum_timeout_seconds"`
	StatusCode            int     `json:"otel_status_code"`
}

// ExistingTraceSpanRequest is the body of PUT <prefix>/trace, sent for spans with a parent.
type ExistingTraceSpanRequest struct {
	TraceId               string  `json:"otel_trace_id"`
	ParentSpanId          *string `json:"otel_parent_span_id"`
	ResourceName          *string `json:"otel_resource_name"`
	Name                  *string `json:"otel_name"`
	StatusMessage         *string `json:"otel_status_message"`
	AttributesJson        *string `json:"otel_attributes_json"`
	CorrelationId         *string `json:"otel_correlation_id"`
	TenantId              *string `json:"otel_tenant_id"`
	TeamName              *string `json:"otel_team_name"`
	ResponsibleUser       *string `json:"otel_responsible_user"`
	MinimumTimeoutSeconds *int    `json:"otel_minimum_timeout_seconds"`
	StatusCode            int     `json:"otel_status_code"`
}

package model

import (
	"github.com/david00medina/opentelemetry-donet/pkg/attribute_lookup"
	"go.opentelemetry.io/otel/trace"
)

// StatusCode follows the OTLP numbering, which is what the collector expects.
type StatusCode int

const (
	StatusUnset StatusCode = 0
	StatusOk    StatusCode = 1
	StatusError StatusCode = 2
)

// SpanRecord is a finished span as handed over by a telemetry pipeline.
type SpanRecord struct {
	TraceId      trace.TraceID
	SpanId       trace.SpanID
	ParentSpanId trace.SpanID
	// ResourceName is the name of the instrumentation scope that produced the span.
	ResourceName  string
	Name          string
	Status        StatusCode
	StatusMessage string
	Attributes    []attribute_lookup.KeyValue
}

var (
	CorrelationIdKeys         = []string{"correlation.id", "CorrelationId", "app.correlation_id"}
	TenantIdKeys              = []string{"tenant.id", "TenantId"}
	TeamNameKeys              = []string{"team.name", "TeamName"}
	ResponsibleUserKeys       = []string{"user.responsible", "ResponsibleUser"}
	MinimumTimeoutSecondsKeys = []string{"timeout.min_seconds", "MinimumTimeoutSeconds"}
)

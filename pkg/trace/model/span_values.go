package model

import (
	"errors"
	"fmt"
	"github.com/david00medina/opentelemetry-donet/pkg/attribute_lookup"
)

// wireStatusCode is sent on every trace lifecycle request whatever the span's status.
// The collector contract carries it as a constant; the real status goes out with the completion request.
const wireStatusCode = 0

type SpanValues struct {
	TraceId               *string
	SpanId                string
	ParentSpanId          *string
	ResourceName          *string
	Name                  *string
	StatusCode            int
	StatusMessage         *string
	AttributesJson        *string
	CorrelationId         *string
	TenantId              *string
	TeamName              *string
	ResponsibleUser       *string
	MinimumTimeoutSeconds *int
}

func NewSpanValues(record SpanRecord) (SpanValues, error) {
	lookup := attribute_lookup.NewAttributeLookup(record.Attributes)
	attributesJson, err := lookup.Serialize()
	if err != nil {
		return SpanValues{}, fmt.Errorf("failed to serialize span attributes: %w", err)
	}

	var traceId, parentSpanId *string
	if record.TraceId.IsValid() {
		id := record.TraceId.String()
		traceId = &id
	}
	if record.ParentSpanId.IsValid() {
		id := record.ParentSpanId.String()
		parentSpanId = &id
	}

	return SpanValues{
		TraceId:               traceId,
		SpanId:                record.SpanId.String(),
		ParentSpanId:          parentSpanId,
		ResourceName:          nonEmpty(record.ResourceName),
		Name:                  nonEmpty(record.Name),
		StatusCode:            int(record.Status),
		StatusMessage:         nonEmpty(record.StatusMessage),
		AttributesJson:        attributesJson,
		CorrelationId:         lookup.GetString(CorrelationIdKeys...),
		TenantId:              lookup.GetString(TenantIdKeys...),
		TeamName:              lookup.GetString(TeamNameKeys...),
		ResponsibleUser:       lookup.GetString(ResponsibleUserKeys...),
		MinimumTimeoutSeconds: lookup.GetInt(MinimumTimeoutSecondsKeys...),
	}, nil
}

// IsRoot reports whether the span starts a new trace.
func (sv SpanValues) IsRoot() bool {
	return sv.ParentSpanId == nil || *sv.ParentSpanId == ""
}

func (sv SpanValues) ToCompletionRequest() SpanCompletionRequest {
	return SpanCompletionRequest{
		SpanId:        sv.SpanId,
		StatusCode:    sv.StatusCode,
		StatusMessage: sv.StatusMessage,
	}
}

func (sv SpanValues) ToNewTraceRequest() NewTraceSpanRequest {
	return NewTraceSpanRequest{
		ParentSpanId:          sv.ParentSpanId,
		ResourceName:          sv.ResourceName,
		Name:                  sv.Name,
		StatusMessage:         sv.StatusMessage,
		AttributesJson:        sv.AttributesJson,
		CorrelationId:         sv.CorrelationId,
		TenantId:              sv.TenantId,
		TeamName:              sv.TeamName,
		ResponsibleUser:       sv.ResponsibleUser,
		MinimumTimeoutSeconds: sv.MinimumTimeoutSeconds,
		StatusCode:            wireStatusCode,
	}
}

// ToExistingTraceRequest fails with ErrMissingTraceId when the span has no trace id,
// since the collector cannot address the trace to update.
func (sv SpanValues) ToExistingTraceRequest() (ExistingTraceSpanRequest, error) {
	if sv.TraceId == nil || *sv.TraceId == "" {
		return ExistingTraceSpanRequest{}, ErrMissingTraceId
	}
	return ExistingTraceSpanRequest{
		TraceId:               *sv.TraceId,
		ParentSpanId:          sv.ParentSpanId,
		ResourceName:          sv.ResourceName,
		Name:                  sv.Name,
		StatusMessage:         sv.StatusMessage,
		AttributesJson:        sv.AttributesJson,
		CorrelationId:         sv.CorrelationId,
		TenantId:              sv.TenantId,
		TeamName:              sv.TeamName,
		ResponsibleUser:       sv.ResponsibleUser,
		MinimumTimeoutSeconds: sv.MinimumTimeoutSeconds,
		StatusCode:            wireStatusCode,
	}, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var (
	ErrMissingTraceId = errors.New("span trace id is required to create a span for an existing trace")
)

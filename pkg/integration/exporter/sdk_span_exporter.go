package exporter

import (
	"context"
	"fmt"
	"github.com/david00medina/opentelemetry-donet/pkg/attribute_lookup"
	"github.com/david00medina/opentelemetry-donet/pkg/integration/client"
	"github.com/david00medina/opentelemetry-donet/pkg/trace/model"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"sync/atomic"
)

// SdkSpanExporter plugs the span exporter into an OpenTelemetry SDK tracer provider.
type SdkSpanExporter struct {
	exporter SpanExporter
	client   client.IntegrationClient
	logger   *zap.Logger
	stopped  atomic.Bool
}

var _ sdktrace.SpanExporter = (*SdkSpanExporter)(nil)

func NewSdkSpanExporter(ic client.IntegrationClient, logger *zap.Logger) *SdkSpanExporter {
	return &SdkSpanExporter{
		exporter: NewSpanExporterImpl(ic, logger),
		client:   ic,
		logger:   logger,
	}
}

func (e *SdkSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	if e.stopped.Load() {
		return ErrExporterShutdown
	}
	if len(spans) == 0 {
		return nil
	}
	records := make([]model.SpanRecord, len(spans))
	for i, span := range spans {
		records[i] = toSpanRecord(span)
	}
	result := e.exporter.ExportSpans(ctx, records)
	if !result.Success {
		return fmt.Errorf("%d of %d spans: %w", len(result.Failed()), len(spans), ErrBatchFailed)
	}
	return nil
}

func (e *SdkSpanExporter) Shutdown(ctx context.Context) error {
	if e.stopped.Swap(true) {
		return nil
	}
	if closer, ok := e.client.(idleConnectionCloser); ok {
		closer.CloseIdleConnections()
	}
	e.logger.Info("Span exporter shut down")
	return nil
}

func toSpanRecord(span sdktrace.ReadOnlySpan) model.SpanRecord {
	attributes := span.Attributes()
	kvs := make([]attribute_lookup.KeyValue, len(attributes))
	for i, attr := range attributes {
		kvs[i] = attribute_lookup.KeyValue{Key: string(attr.Key), Value: attr.Value.AsInterface()}
	}
	status := span.Status()
	return model.SpanRecord{
		TraceId:       span.SpanContext().TraceID(),
		SpanId:        span.SpanContext().SpanID(),
		ParentSpanId:  span.Parent().SpanID(),
		ResourceName:  span.InstrumentationScope().Name,
		Name:          span.Name(),
		Status:        toStatusCode(status.Code),
		StatusMessage: status.Description,
		Attributes:    kvs,
	}
}

// toStatusCode maps the SDK codes, where Error sorts before Ok, onto the wire numbering.
func toStatusCode(code codes.Code) model.StatusCode {
	switch code {
	case codes.Ok:
		return model.StatusOk
	case codes.Error:
		return model.StatusError
	default:
		return model.StatusUnset
	}
}

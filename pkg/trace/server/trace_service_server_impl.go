package server

import (
	"context"
	"fmt"
	"github.com/david00medina/opentelemetry-donet/pkg/attribute_lookup"
	"github.com/david00medina/opentelemetry-donet/pkg/integration/exporter"
	"github.com/david00medina/opentelemetry-donet/pkg/trace/model"
	protoTrace "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	v1 "go.opentelemetry.io/proto/otlp/trace/v1"
	"go.uber.org/zap"
)

type TraceServiceServerImpl struct {
	protoTrace.UnimplementedTraceServiceServer
	exporter exporter.SpanExporter
	logger   *zap.Logger
}

func NewTraceServiceServerImpl(
	logger *zap.Logger,
	spanExporter exporter.SpanExporter,
) *TraceServiceServerImpl {
	logger.Info("Creating new TraceServiceServerImpl")
	return &TraceServiceServerImpl{
		logger:   logger,
		exporter: spanExporter,
	}
}

func (tss *TraceServiceServerImpl) Export(
	ctx context.Context,
	req *protoTrace.ExportTraceServiceRequest,
) (*protoTrace.ExportTraceServiceResponse, error) {
	var records []model.SpanRecord
	for _, resourceSpan := range req.GetResourceSpans() {
		records = append(records, getTypedSpans(resourceSpan)...)
	}

	result := tss.exporter.ExportSpans(ctx, records)
	if result.Success {
		return &protoTrace.ExportTraceServiceResponse{}, nil
	}
	failed := result.Failed()
	tss.logger.Warn(
		"Collector rejected part of the span batch",
		zap.Int("rejected", len(failed)),
		zap.Int("total", len(records)),
	)
	return &protoTrace.ExportTraceServiceResponse{
		PartialSuccess: &protoTrace.ExportTracePartialSuccess{
			RejectedSpans: int64(len(failed)),
			ErrorMessage:  fmt.Sprintf("first failure: %v", failed[0].Err),
		},
	}, nil
}

func getTypedSpans(resourceSpan *v1.ResourceSpans) []model.SpanRecord {
	var typedSpans []model.SpanRecord
	for _, scopeSpans := range resourceSpan.GetScopeSpans() {
		scopeName := scopeSpans.GetScope().GetName()
		for _, span := range scopeSpans.GetSpans() {
			typedSpans = append(typedSpans, getTypedSpan(span, scopeName))
		}
	}
	return typedSpans
}

func getTypedSpan(span *v1.Span, scopeName string) model.SpanRecord {
	return model.SpanRecord{
		TraceId:       attribute_lookup.TraceIdFromProto(span.GetTraceId()),
		SpanId:        attribute_lookup.SpanIdFromProto(span.GetSpanId()),
		ParentSpanId:  attribute_lookup.SpanIdFromProto(span.GetParentSpanId()),
		ResourceName:  scopeName,
		Name:          span.GetName(),
		Status:        getStatus(span),
		StatusMessage: span.GetStatus().GetMessage(),
		Attributes:    attribute_lookup.FromProtoKeyValues(span.GetAttributes()),
	}
}

// getStatus keeps the OTLP numbering, which is also what the collector expects.
func getStatus(span *v1.Span) model.StatusCode {
	switch span.GetStatus().GetCode() {
	case v1.Status_STATUS_CODE_OK:
		return model.StatusOk
	case v1.Status_STATUS_CODE_ERROR:
		return model.StatusError
	default:
		return model.StatusUnset
	}
}


package server

import (
	"context"
	"fmt"
	"github.com/david00medina/opentelemetry-donet/pkg/attribute_lookup"
	"github.com/david00medina/opentelemetry-donet/pkg/integration/exporter"
	"github.com/david00medina/opentelemetry-donet/pkg/log/model"
	protoLogs "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	common "go.opentelemetry.io/proto/otlp/common/v1"
	v1 "go.opentelemetry.io/proto/otlp/logs/v1"
	"go.uber.org/zap"
)

const eventNameAttribute = "event.name"

type LogServiceServerImpl struct {
	protoLogs.UnimplementedLogsServiceServer
	exporter exporter.LogExporter
	logger   *zap.Logger
}

func NewLogServiceServerImpl(
	logger *zap.Logger,
	logExporter exporter.LogExporter,
) *LogServiceServerImpl {
	logger.Info("Creating new LogServiceServerImpl")
	return &LogServiceServerImpl{
		logger:   logger,
		exporter: logExporter,
	}
}

// Export relays every record of the request as a single batch. Records the collector refused
// are reported through partial success rather than failing the call.
func (lss *LogServiceServerImpl) Export(
	ctx context.Context,
	req *protoLogs.ExportLogsServiceRequest,
) (*protoLogs.ExportLogsServiceResponse, error) {
	var records []model.LogRecord
	for _, resourceLogs := range req.GetResourceLogs() {
		for _, scopeLog := range resourceLogs.GetScopeLogs() {
			for _, log := range scopeLog.GetLogRecords() {
				records = append(records, typeLog(log))
			}
		}
	}

	result := lss.exporter.ExportLogs(ctx, records)
	if result.Success {
		return &protoLogs.ExportLogsServiceResponse{}, nil
	}
	failed := result.Failed()
	lss.logger.Warn(
		"Collector rejected part of the log batch",
		zap.Int("rejected", len(failed)),
		zap.Int("total", len(records)),
	)
	return &protoLogs.ExportLogsServiceResponse{
		PartialSuccess: &protoLogs.ExportLogsPartialSuccess{
			RejectedLogRecords: int64(len(failed)),
			ErrorMessage:       fmt.Sprintf("first failure: %v", failed[0].Err),
		},
	}, nil
}

func typeLog(log *v1.LogRecord) model.LogRecord {
	attributes := attribute_lookup.FromProtoKeyValues(log.GetAttributes())
	record := model.LogRecord{
		TraceId:        attribute_lookup.TraceIdFromProto(log.GetTraceId()),
		SpanId:         attribute_lookup.SpanIdFromProto(log.GetSpanId()),
		SeverityText:   log.GetSeverityText(),
		SeverityNumber: int(log.GetSeverityNumber()),
		EventName:      log.GetEventName(),
		Attributes:     attributes,
	}

	if body := log.GetBody(); body != nil {
		if _, isString := body.Value.(*common.AnyValue_StringValue); isString {
			message := body.GetStringValue()
			record.FormattedMessage = &message
		} else {
			record.Body = attribute_lookup.FromProtoAnyValue(body)
		}
	}

	if record.EventName == "" {
		// older senders only carry the event name as an attribute
		for _, attr := range attributes {
			if name, ok := attr.Value.(string); ok && attr.Key == eventNameAttribute {
				record.EventName = name
				break
			}
		}
	}
	return record
}

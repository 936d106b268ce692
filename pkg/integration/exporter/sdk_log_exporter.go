package exporter

import (
	"context"
	"errors"
	"fmt"
	"github.com/david00medina/opentelemetry-donet/pkg/attribute_lookup"
	"github.com/david00medina/opentelemetry-donet/pkg/integration/client"
	"github.com/david00medina/opentelemetry-donet/pkg/log/model"
	otelLog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"sync/atomic"
)

const eventNameAttribute = "event.name"

type idleConnectionCloser interface {
	CloseIdleConnections()
}

// SdkLogExporter plugs the log exporter into an OpenTelemetry SDK logger provider.
type SdkLogExporter struct {
	exporter LogExporter
	client   client.IntegrationClient
	logger   *zap.Logger
	stopped  atomic.Bool
}

var _ sdklog.Exporter = (*SdkLogExporter)(nil)

func NewSdkLogExporter(ic client.IntegrationClient, logger *zap.Logger) *SdkLogExporter {
	return &SdkLogExporter{
		exporter: NewLogExporterImpl(ic, logger),
		client:   ic,
		logger:   logger,
	}
}

func (e *SdkLogExporter) Export(ctx context.Context, records []sdklog.Record) error {
	if e.stopped.Load() {
		return ErrExporterShutdown
	}
	if len(records) == 0 {
		return nil
	}
	logRecords := make([]model.LogRecord, len(records))
	for i := range records {
		logRecords[i] = toLogRecord(&records[i])
	}
	result := e.exporter.ExportLogs(ctx, logRecords)
	if !result.Success {
		return fmt.Errorf("%d of %d log records: %w", len(result.Failed()), len(records), ErrBatchFailed)
	}
	return nil
}

func (e *SdkLogExporter) Shutdown(ctx context.Context) error {
	if e.stopped.Swap(true) {
		return nil
	}
	if closer, ok := e.client.(idleConnectionCloser); ok {
		closer.CloseIdleConnections()
	}
	e.logger.Info("Log exporter shut down")
	return nil
}

func (e *SdkLogExporter) ForceFlush(ctx context.Context) error {
	return nil
}

func toLogRecord(record *sdklog.Record) model.LogRecord {
	logRecord := model.LogRecord{
		TraceId:        record.TraceID(),
		SpanId:         record.SpanID(),
		SeverityText:   record.SeverityText(),
		SeverityNumber: int(record.Severity()),
		EventName:      record.EventName(),
		Attributes:     make([]attribute_lookup.KeyValue, 0, record.AttributesLen()),
	}

	body := record.Body()
	switch body.Kind() {
	case otelLog.KindEmpty:
	case otelLog.KindString:
		message := body.AsString()
		logRecord.FormattedMessage = &message
	default:
		logRecord.Body = logValueToAny(body)
	}

	record.WalkAttributes(func(kv otelLog.KeyValue) bool {
		value := logValueToAny(kv.Value)
		if kv.Key == eventNameAttribute && logRecord.EventName == "" {
			if name, ok := value.(string); ok {
				logRecord.EventName = name
			}
		}
		logRecord.Attributes = append(logRecord.Attributes, attribute_lookup.KeyValue{Key: kv.Key, Value: value})
		return true
	})
	return logRecord
}

func logValueToAny(value otelLog.Value) any {
	switch value.Kind() {
	case otelLog.KindBool:
		return value.AsBool()
	case otelLog.KindInt64:
		return value.AsInt64()
	case otelLog.KindFloat64:
		return value.AsFloat64()
	case otelLog.KindString:
		return value.AsString()
	case otelLog.KindBytes:
		return value.AsBytes()
	case otelLog.KindSlice:
		values := value.AsSlice()
		items := make([]any, len(values))
		for i, item := range values {
			items[i] = logValueToAny(item)
		}
		return items
	case otelLog.KindMap:
		entries := value.AsMap()
		items := make(map[string]any, len(entries))
		for _, entry := range entries {
			items[entry.Key] = logValueToAny(entry.Value)
		}
		return items
	default:
		return nil
	}
}

var (
	ErrBatchFailed      = errors.New("failed to export batch to telemetry service")
	ErrExporterShutdown = errors.New("exporter is shut down")
)

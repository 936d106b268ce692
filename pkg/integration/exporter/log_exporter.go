package exporter

import (
	"context"
	"fmt"
	"github.com/david00medina/opentelemetry-donet/pkg/integration/client"
	"github.com/david00medina/opentelemetry-donet/pkg/log/model"
	"go.uber.org/zap"
)

type LogSender struct {
	client client.IntegrationClient
}

func NewLogSender(ic client.IntegrationClient) *LogSender {
	return &LogSender{client: ic}
}

func (ls *LogSender) Kind() string {
	return "log record"
}

func (ls *LogSender) Send(ctx context.Context, record model.LogRecord) error {
	values, err := model.NewLogValues(record)
	if err != nil {
		return fmt.Errorf("failed to normalize log record: %w", err)
	}
	return ls.client.SendLog(ctx, values)
}

type LogExporter interface {
	ExportLogs(ctx context.Context, records []model.LogRecord) BatchResult
}

type LogExporterImpl struct {
	sender *LogSender
	logger *zap.Logger
}

func NewLogExporterImpl(ic client.IntegrationClient, logger *zap.Logger) *LogExporterImpl {
	return &LogExporterImpl{
		sender: NewLogSender(ic),
		logger: logger,
	}
}

func (le *LogExporterImpl) ExportLogs(ctx context.Context, records []model.LogRecord) BatchResult {
	return ExportBatch[model.LogRecord](ctx, records, le.sender, le.logger)
}

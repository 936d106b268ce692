package exporter

import (
	"context"
	"fmt"
	"github.com/david00medina/opentelemetry-donet/pkg/integration/client"
	"github.com/david00medina/opentelemetry-donet/pkg/trace/model"
	"go.uber.org/zap"
)

type SpanSender struct {
	client client.IntegrationClient
}

func NewSpanSender(ic client.IntegrationClient) *SpanSender {
	return &SpanSender{client: ic}
}

func (ss *SpanSender) Kind() string {
	return "span"
}

// Send registers the span with its trace, then reports it as completed. The completion call is
// only made once the lifecycle call went through.
func (ss *SpanSender) Send(ctx context.Context, record model.SpanRecord) error {
	values, err := model.NewSpanValues(record)
	if err != nil {
		return fmt.Errorf("failed to normalize span: %w", err)
	}
	if err := ss.client.SendTraceLifecycle(ctx, values); err != nil {
		return fmt.Errorf("failed to send trace lifecycle for span %s: %w", values.SpanId, err)
	}
	if err := ss.client.NotifySpanCompletion(ctx, values); err != nil {
		return fmt.Errorf("failed to notify completion of span %s: %w", values.SpanId, err)
	}
	return nil
}

type SpanExporter interface {
	ExportSpans(ctx context.Context, records []model.SpanRecord) BatchResult
}

type SpanExporterImpl struct {
	sender *SpanSender
	logger *zap.Logger
}

func NewSpanExporterImpl(ic client.IntegrationClient, logger *zap.Logger) *SpanExporterImpl {
	return &SpanExporterImpl{
		sender: NewSpanSender(ic),
		logger: logger,
	}
}

func (se *SpanExporterImpl) ExportSpans(ctx context.Context, records []model.SpanRecord) BatchResult {
	return ExportBatch[model.SpanRecord](ctx, records, se.sender, se.logger)
}

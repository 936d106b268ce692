package otel_setup

import (
	"context"
	"errors"
	"fmt"
	"github.com/david00medina/opentelemetry-donet/pkg/config"
	"github.com/david00medina/opentelemetry-donet/pkg/integration/client"
	"github.com/david00medina/opentelemetry-donet/pkg/integration/exporter"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Telemetry owns the providers of one process. Shutdown flushes whatever is still batched.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	LoggerProvider *sdklog.LoggerProvider
	serviceName    string
}

type Option func(*options)

type options struct {
	syncExport   bool
	otlpEndpoint string
}

// WithSyncExport exports every span and log record as soon as it ends instead of batching.
func WithSyncExport() Option {
	return func(o *options) {
		o.syncExport = true
	}
}

// WithOTLPEndpoint additionally ships spans to an OTLP/HTTP receiver at host:port.
func WithOTLPEndpoint(endpoint string) Option {
	return func(o *options) {
		o.otlpEndpoint = endpoint
	}
}

func NewIntegrationClient(cfg config.IntegrationConfig) (*client.IntegrationClientImpl, error) {
	return client.NewIntegrationClientImpl(
		client.NewHTTPClient(cfg.Timeout),
		cfg.BaseURL,
		client.WithPathPrefix(cfg.PathPrefix),
		client.WithCompression(cfg.Compression),
		client.WithHeaders(cfg.Headers),
	)
}

func NewResource(ctx context.Context, serviceName string, serviceVersion string) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// NewTelemetry builds tracer and logger providers that export to the integration collector.
// exporterLogger must not feed back into the returned logger provider.
func NewTelemetry(
	ctx context.Context,
	serviceName string,
	res *resource.Resource,
	ic client.IntegrationClient,
	exporterLogger *zap.Logger,
	opts ...Option,
) (*Telemetry, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	spanExporter := exporter.NewSdkSpanExporter(ic, exporterLogger)
	logExporter := exporter.NewSdkLogExporter(ic, exporterLogger)

	tracerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}
	var logProcessor sdklog.Processor
	if o.syncExport {
		tracerOpts = append(tracerOpts, sdktrace.WithSyncer(spanExporter))
		logProcessor = sdklog.NewSimpleProcessor(logExporter)
	} else {
		tracerOpts = append(tracerOpts, sdktrace.WithBatcher(spanExporter))
		logProcessor = sdklog.NewBatchProcessor(logExporter)
	}

	if o.otlpEndpoint != "" {
		otlpExporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(o.otlpEndpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create otlp trace exporter: %w", err)
		}
		tracerOpts = append(tracerOpts, sdktrace.WithBatcher(otlpExporter))
	}

	return &Telemetry{
		TracerProvider: sdktrace.NewTracerProvider(tracerOpts...),
		LoggerProvider: sdklog.NewLoggerProvider(
			sdklog.WithResource(res),
			sdklog.WithProcessor(logProcessor),
		),
		serviceName: serviceName,
	}, nil
}

// AppLogger tees console into the log pipeline, so application logs reach the collector too.
func (t *Telemetry) AppLogger(console *zap.Logger) *zap.Logger {
	bridge := otelzap.NewCore(t.serviceName, otelzap.WithLoggerProvider(t.LoggerProvider))
	return zap.New(zapcore.NewTee(console.Core(), bridge))
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.TracerProvider.Shutdown(ctx),
		t.LoggerProvider.Shutdown(ctx),
	)
}

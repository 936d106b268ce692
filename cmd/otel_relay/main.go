package main

import (
	"context"
	"github.com/david00medina/opentelemetry-donet/pkg/config"
	"github.com/david00medina/opentelemetry-donet/pkg/integration/exporter"
	logsServer "github.com/david00medina/opentelemetry-donet/pkg/log/server"
	"github.com/david00medina/opentelemetry-donet/pkg/otel_setup"
	traceServer "github.com/david00medina/opentelemetry-donet/pkg/trace/server"
	protoLogs "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	protoTrace "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	_ "google.golang.org/grpc/encoding/gzip"
	"net"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadRelayConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ic, err := otel_setup.NewIntegrationClient(cfg.Integration)
	if err != nil {
		logger.Fatal("Failed to create integration client", zap.Error(err))
	}
	defer ic.CloseIdleConnections()

	listener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("Failed to listen", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}

	srv := grpc.NewServer()
	traceServiceServer := traceServer.NewTraceServiceServerImpl(
		logger,
		exporter.NewSpanExporterImpl(ic, logger),
	)
	logServiceServer := logsServer.NewLogServiceServerImpl(
		logger,
		exporter.NewLogExporterImpl(ic, logger),
	)

	protoTrace.RegisterTraceServiceServer(srv, traceServiceServer)
	protoLogs.RegisterLogsServiceServer(srv, logServiceServer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC service")
		srv.GracefulStop()
	}()

	logger.Info("gRPC service started, relaying OpenTelemetry traces and logs...", zap.String("addr", cfg.GRPCAddr))
	if err := srv.Serve(listener); err != nil {
		logger.Fatal("Failed to serve", zap.Error(err))
	}
}

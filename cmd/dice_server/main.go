package main

import (
	"context"
	"errors"
	"github.com/david00medina/opentelemetry-donet/pkg/config"
	"github.com/david00medina/opentelemetry-donet/pkg/dice/model"
	"github.com/david00medina/opentelemetry-donet/pkg/dice/service"
	"github.com/david00medina/opentelemetry-donet/pkg/otel_setup"
	"github.com/david00medina/opentelemetry-donet/pkg/server/router"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	console, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer console.Sync()

	cfg, err := config.LoadDiceServerConfig()
	if err != nil {
		console.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ic, err := otel_setup.NewIntegrationClient(cfg.Integration)
	if err != nil {
		console.Fatal("Failed to create integration client", zap.Error(err))
	}
	res, err := otel_setup.NewResource(ctx, cfg.ServiceName, cfg.ServiceVersion)
	if err != nil {
		console.Fatal("Failed to create resource", zap.Error(err))
	}

	var telemetryOpts []otel_setup.Option
	if cfg.OTLPEndpoint != "" {
		telemetryOpts = append(telemetryOpts, otel_setup.WithOTLPEndpoint(cfg.OTLPEndpoint))
	}
	// exporters log to the console only, their failures must not loop back into the pipeline
	telemetry, err := otel_setup.NewTelemetry(ctx, cfg.ServiceName, res, ic, console.Named("exporter"), telemetryOpts...)
	if err != nil {
		console.Fatal("Failed to set up telemetry", zap.Error(err))
	}
	otel.SetTracerProvider(telemetry.TracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	logger := telemetry.AppLogger(console)

	dice, err := model.NewDice(model.DefaultMin, model.DefaultMax)
	if err != nil {
		logger.Fatal("Failed to create dice", zap.Error(err))
	}
	diceService := service.NewDiceServiceImpl(dice, telemetry.TracerProvider.Tracer(cfg.ServiceName), logger)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: router.CreateRouter(
			diceService,
			logger,
			otelhttp.WithTracerProvider(telemetry.TracerProvider),
		),
	}

	go func() {
		logger.Info("HTTP server started", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		console.Error("Failed to shut down HTTP server", zap.Error(err))
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		console.Error("Failed to flush telemetry", zap.Error(err))
	}
}

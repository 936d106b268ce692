package main

import (
	"context"
	"fmt"
	"github.com/david00medina/opentelemetry-donet/pkg/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

const correlationIdHeader = "X-Correlation-Id"

type result struct {
	duration   time.Duration
	statusCode int
}

// worker keeps rolling until ctx is done, waiting interval between requests.
func worker(ctx context.Context, cfg config.DiceClientConfig, client *http.Client, results chan<- result) error {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			req, err := newRollRequest(ctx, cfg)
			if err != nil {
				return err
			}
			start := time.Now()
			resp, err := client.Do(req)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				results <- result{duration: time.Since(start)}
				continue
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			results <- result{duration: time.Since(start), statusCode: resp.StatusCode}
		}
	}
}

func newRollRequest(ctx context.Context, cfg config.DiceClientConfig) (*http.Request, error) {
	target, err := url.Parse(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid target %q: %w", cfg.Target, err)
	}
	query := target.Query()
	query.Set("rolls", strconv.Itoa(1+rand.IntN(max(cfg.MaxRolls, 1))))
	if len(cfg.Players) > 0 {
		if player := cfg.Players[rand.IntN(len(cfg.Players))]; player != "" {
			query.Set("player", player)
		}
	}
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(correlationIdHeader, uuid.NewString())
	return req, nil
}

func runLoadTest(ctx context.Context, cfg config.DiceClientConfig, logger *zap.Logger) error {
	if cfg.Interval <= 0 || cfg.Workers <= 0 {
		return fmt.Errorf("workers (%d) and interval (%s) must be positive", cfg.Workers, cfg.Interval)
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	results := make(chan result, 1000)
	client := &http.Client{Timeout: 10 * time.Second}
	g, gctx := errgroup.WithContext(ctx)

	logger.Info(
		"Starting load test",
		zap.Int("workers", cfg.Workers),
		zap.Duration("duration", cfg.Duration),
		zap.String("target", cfg.Target),
	)
	for i := 0; i < cfg.Workers; i++ {
		g.Go(func() error {
			return worker(gctx, cfg, client, results)
		})
	}

	var waitErr error
	done := make(chan struct{})
	go func() {
		waitErr = g.Wait()
		close(results)
		close(done)
	}()

	var totalRequests, failedRequests int
	var totalTime time.Duration
	for r := range results {
		totalRequests++
		totalTime += r.duration
		if r.statusCode < 200 || r.statusCode > 299 {
			failedRequests++
		}
	}
	<-done

	avgTime := time.Duration(0)
	if totalRequests > 0 {
		avgTime = totalTime / time.Duration(totalRequests)
	}
	logger.Info(
		"Load test completed",
		zap.Int("total_requests", totalRequests),
		zap.Int("failed_requests", failedRequests),
		zap.Duration("average_response_time", avgTime),
	)
	return waitErr
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadDiceClientConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runLoadTest(ctx, cfg, logger); err != nil {
		logger.Error("Load test encountered errors", zap.Error(err))
		os.Exit(1)
	}
}

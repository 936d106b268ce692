package exporter

import (
	"context"
	"go.uber.org/zap"
)

// RecordSender delivers one finished record to the collector.
type RecordSender[R any] interface {
	Send(ctx context.Context, record R) error
	// Kind names the record type in log messages, e.g. "log record" or "span".
	Kind() string
}

type RecordResult struct {
	Index int
	Err   error
}

func (r RecordResult) Succeeded() bool {
	return r.Err == nil
}

type BatchResult struct {
	Results []RecordResult
	Success bool
}

// Failed returns the results of the records that could not be delivered, in batch order.
func (br BatchResult) Failed() []RecordResult {
	var failed []RecordResult
	for _, result := range br.Results {
		if !result.Succeeded() {
			failed = append(failed, result)
		}
	}
	return failed
}

// ExportBatch sends the records one at a time in arrival order. A failing record is logged and
// recorded, and the remaining records are still attempted. Cancelling ctx does not abort calls
// already handed to the sender; each call is bounded by the client timeout instead.
func ExportBatch[R any](
	ctx context.Context,
	records []R,
	sender RecordSender[R],
	logger *zap.Logger,
) BatchResult {
	sendCtx := context.WithoutCancel(ctx)
	result := BatchResult{
		Results: make([]RecordResult, len(records)),
		Success: true,
	}
	for i, record := range records {
		err := sender.Send(sendCtx, record)
		result.Results[i] = RecordResult{Index: i, Err: err}
		if err != nil {
			result.Success = false
			logger.Error(
				"Failed to export "+sender.Kind()+" to telemetry service",
				zap.Int("index", i),
				zap.Error(err),
			)
		}
	}
	return result
}

package logging

import (
	"context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type correlationIdKey struct{}

const CorrelationIdAttribute = "correlation.id"

func WithCorrelationId(ctx context.Context, correlationId string) context.Context {
	return context.WithValue(ctx, correlationIdKey{}, correlationId)
}

func CorrelationIdFromContext(ctx context.Context) string {
	if correlationId, ok := ctx.Value(correlationIdKey{}).(string); ok {
		return correlationId
	}
	return ""
}

// Context carries ctx to the OpenTelemetry log bridge so records pick up the active span.
// Console encoders skip the field.
func Context(ctx context.Context) zap.Field {
	return zap.Field{Key: "context", Type: zapcore.SkipType, Interface: ctx}
}

// CorrelationId is the structured field for the request's correlation id.
func CorrelationId(ctx context.Context) zap.Field {
	return zap.String(CorrelationIdAttribute, CorrelationIdFromContext(ctx))
}

package service

import (
	"context"
	"github.com/david00medina/opentelemetry-donet/pkg/dice/model"
	"github.com/david00medina/opentelemetry-donet/pkg/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	rollDiceSpanName = "RollDice"
	rollsAttribute   = "dice.rolls"
	playerAttribute  = "dice.player"
)

type DiceService interface {
	RollDice(ctx context.Context, player string, rolls int) []int
}

type DiceServiceImpl struct {
	dice   model.Dice
	tracer trace.Tracer
	logger *zap.Logger
}

func NewDiceServiceImpl(dice model.Dice, tracer trace.Tracer, logger *zap.Logger) *DiceServiceImpl {
	return &DiceServiceImpl{
		dice:   dice,
		tracer: tracer,
		logger: logger,
	}
}

// RollDice rolls inside its own span. An empty player name is logged as anonymous.
func (ds *DiceServiceImpl) RollDice(ctx context.Context, player string, rolls int) []int {
	ctx, span := ds.tracer.Start(ctx, rollDiceSpanName)
	defer span.End()

	correlationId := logging.CorrelationIdFromContext(ctx)
	span.SetAttributes(
		attribute.Int(rollsAttribute, rolls),
		attribute.String(logging.CorrelationIdAttribute, correlationId),
	)

	result := ds.dice.RollTheDice(rolls)
	fields := []zap.Field{
		logging.Context(ctx),
		logging.CorrelationId(ctx),
		zap.Ints("result", result),
	}
	if player == "" {
		ds.logger.Info("Anonymous player is rolling the dice", fields...)
	} else {
		span.SetAttributes(attribute.String(playerAttribute, player))
		ds.logger.Info(player+" is rolling the dice", append(fields, zap.String("player", player))...)
	}
	return result
}

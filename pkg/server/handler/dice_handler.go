package handler

import (
	"encoding/json"
	"fmt"
	"github.com/david00medina/opentelemetry-donet/pkg/dice/service"
	"github.com/david00medina/opentelemetry-donet/pkg/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"net/http"
	"strconv"
)

const MaxRolls = 1000

const CorrelationIdHeader = "X-Correlation-Id"

const (
	missingRollsMessage = "Missing rolls parameter"
	invalidRollsMessage = "Invalid rolls parameter"
)

// RollDiceHandler creates a handler for rolling the dice.
// @Summary Roll the dice
// @Description Rolls a six sided die the requested number of times.
// @Tags dice
// @Produce json
// @Param player query string false "Name of the player rolling"
// @Param rolls query int true "Number of rolls"
// @Success 200 {array} int "Roll results"
// @Failure 400 {object} ErrorMessage "Missing or invalid rolls parameter"
// @Router /rolldice [get]
func RollDiceHandler(
	s service.DiceService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		correlationId := r.Header.Get(CorrelationIdHeader)
		if correlationId == "" {
			correlationId = uuid.NewString()
		}
		ctx := logging.WithCorrelationId(r.Context(), correlationId)
		trace.SpanFromContext(ctx).SetAttributes(attribute.String(logging.CorrelationIdAttribute, correlationId))
		w.Header().Set(CorrelationIdHeader, correlationId)

		query := r.URL.Query()
		rawRolls := query.Get("rolls")
		if rawRolls == "" {
			logger.Error(missingRollsMessage, logging.Context(ctx), logging.CorrelationId(ctx))
			HttpError(w, missingRollsMessage, http.StatusBadRequest, logger)
			return
		}
		rolls, err := strconv.Atoi(rawRolls)
		if err != nil {
			logger.Error(
				invalidRollsMessage,
				logging.Context(ctx),
				logging.CorrelationId(ctx),
				zap.String("rolls", rawRolls),
				zap.Error(err),
			)
			HttpError(w, invalidRollsMessage, http.StatusBadRequest, logger)
			return
		}
		if rolls < 0 || rolls > MaxRolls {
			logger.Error(
				invalidRollsMessage,
				logging.Context(ctx),
				logging.CorrelationId(ctx),
				zap.Int("rolls", rolls),
			)
			HttpError(w, fmt.Sprintf("rolls must be between 0 and %d", MaxRolls), http.StatusBadRequest, logger)
			return
		}

		result := s.RollDice(ctx, query.Get("player"), rolls)

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(result)
		if err != nil {
			logger.Error("Error encountered during JSON Encoding of Response", zap.Error(err))
			HttpError(w, "Error encountered during JSON Encoding of Response", http.StatusInternalServerError, logger)
		}
	}
}

package router

import (
	"github.com/david00medina/opentelemetry-donet/pkg/dice/service"
	"github.com/david00medina/opentelemetry-donet/pkg/server/handler"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"net/http"
)

const operationName = "dice-server"

// CreateRouter wires the dice routes. Every request runs inside a server span.
func CreateRouter(
	diceService service.DiceService,
	logger *zap.Logger,
	opts ...otelhttp.Option,
) http.Handler {
	r := mux.NewRouter()

	r.Handle("/rolldice", handler.RollDiceHandler(diceService, logger)).Methods("GET")

	opts = append([]otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	}, opts...)
	return otelhttp.NewHandler(r, operationName, opts...)
}

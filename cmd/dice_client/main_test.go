package main

import (
	"context"
	"github.com/david00medina/opentelemetry-donet/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewRollRequest(t *testing.T) {
	t.Run("Sets rolls, player and a correlation id", func(t *testing.T) {
		cfg := config.DiceClientConfig{Target: "http://localhost:8080/rolldice", MaxRolls: 3, Players: []string{"alice"}}

		req, err := newRollRequest(context.Background(), cfg)
		require.Nil(t, err)
		rolls, err := strconv.Atoi(req.URL.Query().Get("rolls"))
		require.Nil(t, err)
		assert.GreaterOrEqual(t, rolls, 1)
		assert.LessOrEqual(t, rolls, 3)
		assert.Equal(t, "alice", req.URL.Query().Get("player"))
		assert.NotEmpty(t, req.Header.Get(correlationIdHeader))
	})

	t.Run("Anonymous players send no player parameter", func(t *testing.T) {
		cfg := config.DiceClientConfig{Target: "http://localhost:8080/rolldice", MaxRolls: 1, Players: []string{""}}

		req, err := newRollRequest(context.Background(), cfg)
		require.Nil(t, err)
		assert.False(t, req.URL.Query().Has("player"))
	})
}

func TestRunLoadTest(t *testing.T) {
	t.Run("Sends requests until the duration elapses", func(t *testing.T) {
		var hits atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte("[1]"))
		}))
		defer server.Close()

		cfg := config.DiceClientConfig{
			Target:   server.URL + "/rolldice",
			Workers:  2,
			Duration: 200 * time.Millisecond,
			Interval: 20 * time.Millisecond,
			MaxRolls: 1,
		}
		require.Nil(t, runLoadTest(context.Background(), cfg, zap.NewNop()))
		assert.Greater(t, hits.Load(), int64(0))
	})

	t.Run("Rejects a zero interval", func(t *testing.T) {
		err := runLoadTest(context.Background(), config.DiceClientConfig{Workers: 1}, zap.NewNop())
		assert.NotNil(t, err)
	})
}

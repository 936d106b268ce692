package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestLoadDiceServerConfig(t *testing.T) {
	t.Run("Applies defaults", func(t *testing.T) {
		t.Setenv("INTEGRATION_BASE_URL", "https://collector.local")

		cfg, err := LoadDiceServerConfig()
		require.Nil(t, err)
		assert.Equal(t, "https://collector.local", cfg.Integration.BaseURL)
		assert.Equal(t, "api/integrations", cfg.Integration.PathPrefix)
		assert.Equal(t, 10*time.Second, cfg.Integration.Timeout)
		assert.Equal(t, "none", cfg.Integration.Compression)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "dice-server", cfg.ServiceName)
		assert.Equal(t, "1.0.0", cfg.ServiceVersion)
		assert.Equal(t, "", cfg.OTLPEndpoint)
	})

	t.Run("Reads overrides and headers", func(t *testing.T) {
		t.Setenv("INTEGRATION_BASE_URL", "https://collector.local")
		t.Setenv("INTEGRATION_PATH_PREFIX", "api/integration")
		t.Setenv("INTEGRATION_TIMEOUT", "3s")
		t.Setenv("INTEGRATION_COMPRESSION", "gzip")
		t.Setenv("INTEGRATION_HEADERS", "X-Api-Key:secret,X-Tenant:t-1")
		t.Setenv("DICE_HTTP_ADDR", ":9090")

		cfg, err := LoadDiceServerConfig()
		require.Nil(t, err)
		assert.Equal(t, "api/integration", cfg.Integration.PathPrefix)
		assert.Equal(t, 3*time.Second, cfg.Integration.Timeout)
		assert.Equal(t, "gzip", cfg.Integration.Compression)
		assert.Equal(t, map[string]string{"X-Api-Key": "secret", "X-Tenant": "t-1"}, cfg.Integration.Headers)
		assert.Equal(t, ":9090", cfg.HTTPAddr)
	})

	t.Run("Requires the collector base url", func(t *testing.T) {
		t.Setenv("INTEGRATION_BASE_URL", "")
		_, err := LoadDiceServerConfig()
		assert.ErrorContains(t, err, "parse env:")
	})
}

func TestLoadRelayConfig(t *testing.T) {
	t.Run("Listens on the OTLP gRPC port by default", func(t *testing.T) {
		t.Setenv("INTEGRATION_BASE_URL", "https://collector.local")
		cfg, err := LoadRelayConfig()
		require.Nil(t, err)
		assert.Equal(t, ":4317", cfg.GRPCAddr)
	})
}

func TestLoadDiceClientConfig(t *testing.T) {
	t.Run("Rejects malformed durations", func(t *testing.T) {
		t.Setenv("DICE_CLIENT_INTERVAL", "soon")
		_, err := LoadDiceClientConfig()
		assert.ErrorContains(t, err, "parse env:")
	})

	t.Run("Keeps an empty player for anonymous rolls", func(t *testing.T) {
		cfg, err := LoadDiceClientConfig()
		require.Nil(t, err)
		assert.Equal(t, []string{"alice", "bob", ""}, cfg.Players)
		assert.Equal(t, 5, cfg.Workers)
	})
}

package config

import (
	"time"
)

// IntegrationConfig addresses the collector that receives the flattened telemetry.
type IntegrationConfig struct {
	BaseURL     string            `env:"INTEGRATION_BASE_URL,required,notEmpty"`
	PathPrefix  string            `env:"INTEGRATION_PATH_PREFIX" envDefault:"api/integrations"`
	Timeout     time.Duration     `env:"INTEGRATION_TIMEOUT" envDefault:"10s"`
	Compression string            `env:"INTEGRATION_COMPRESSION" envDefault:"none"`
	Headers     map[string]string `env:"INTEGRATION_HEADERS" envSeparator:"," envKeyValSeparator:":"`
}

type DiceServerConfig struct {
	Integration    IntegrationConfig
	HTTPAddr       string `env:"DICE_HTTP_ADDR" envDefault:":8080"`
	ServiceName    string `env:"DICE_SERVICE_NAME" envDefault:"dice-server"`
	ServiceVersion string `env:"DICE_SERVICE_VERSION" envDefault:"1.0.0"`
	// OTLPEndpoint, when set, also ships spans to an OTLP/HTTP endpoint (host:port).
	OTLPEndpoint    string        `env:"DICE_OTLP_ENDPOINT"`
	ShutdownTimeout time.Duration `env:"DICE_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

type RelayConfig struct {
	Integration IntegrationConfig
	GRPCAddr    string `env:"RELAY_GRPC_ADDR" envDefault:":4317"`
}

type DiceClientConfig struct {
	Target   string        `env:"DICE_CLIENT_TARGET" envDefault:"http://localhost:8080/rolldice"`
	Workers  int           `env:"DICE_CLIENT_WORKERS" envDefault:"5"`
	Duration time.Duration `env:"DICE_CLIENT_DURATION" envDefault:"1m"`
	Interval time.Duration `env:"DICE_CLIENT_INTERVAL" envDefault:"500ms"`
	MaxRolls int           `env:"DICE_CLIENT_MAX_ROLLS" envDefault:"10"`
	Players  []string      `env:"DICE_CLIENT_PLAYERS" envSeparator:"," envDefault:"alice,bob,"`
}

func LoadDiceServerConfig() (DiceServerConfig, error) {
	var cfg DiceServerConfig
	err := ParseEnv(&cfg)
	return cfg, err
}

func LoadRelayConfig() (RelayConfig, error) {
	var cfg RelayConfig
	err := ParseEnv(&cfg)
	return cfg, err
}

func LoadDiceClientConfig() (DiceClientConfig, error) {
	var cfg DiceClientConfig
	err := ParseEnv(&cfg)
	return cfg, err
}

package game

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/rogue1980/internal/engine"
	"github.com/samdwyer/rogue1980/internal/telemetry"
)

// Config holds game configuration options, read from the environment.
type Config struct {
	// Seed for random number generation. Used for reproducible runs.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"ROGUE_SEED"`

	Width        int `env:"ROGUE_WIDTH" envDefault:"80"`
	Height       int `env:"ROGUE_HEIGHT" envDefault:"21"`
	MinRooms     int `env:"ROGUE_MIN_ROOMS" envDefault:"6"`
	MaxRooms     int `env:"ROGUE_MAX_ROOMS" envDefault:"9"`
	VisionRadius int `env:"ROGUE_VISION_RADIUS" envDefault:"8"`

	// ScoreboardPath is the SQLite file finished runs are recorded in.
	// Empty disables the scoreboard.
	ScoreboardPath string `env:"ROGUE_SCOREBOARD_PATH" envDefault:"rogue1980.db"`

	Telemetry         bool   `env:"ROGUE_TELEMETRY" envDefault:"false"`
	TelemetryEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	TelemetryHeaders  string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
}

// LoadConfig parses Config from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Engine returns the engine configuration for a run.
func (c Config) Engine() engine.Config {
	ec := engine.DefaultConfig()
	ec.Seed = c.Seed
	ec.Width = c.Width
	ec.Height = c.Height
	ec.MinRooms = c.MinRooms
	ec.MaxRooms = c.MaxRooms
	ec.VisionRadius = c.VisionRadius
	return ec
}

// TelemetryConfig returns the tracer configuration.
func (c Config) TelemetryConfig() telemetry.Config {
	return telemetry.Config{
		Enabled:  c.Telemetry,
		Endpoint: c.TelemetryEndpoint,
		Headers:  c.TelemetryHeaders,
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all impactgrid server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Sim     SimConfig     `yaml:"sim"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP and websocket listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// Origins allowed to open the websocket. Empty allows same-host only.
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// SimConfig configures the simulation loop.
type SimConfig struct {
	TickRateHz         int    `yaml:"tick_rate_hz"`
	PlaceIntervalTicks uint64 `yaml:"place_interval_ticks"`
	Seed               uint64 `yaml:"seed"`         // 0 picks a time-based seed
	CatalogPath        string `yaml:"catalog_path"` // empty uses the embedded catalog
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Sim: SimConfig{
			TickRateHz:         60,
			PlaceIntervalTicks: 12,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if addr := os.Getenv("IMPACTGRID_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if lvl := os.Getenv("IMPACTGRID_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if s := os.Getenv("IMPACTGRID_SEED"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid IMPACTGRID_SEED %q: %w", s, err)
		}
		c.Sim.Seed = seed
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must be set")
	}
	if c.Sim.TickRateHz <= 0 || c.Sim.TickRateHz > 1000 {
		return fmt.Errorf("sim.tick_rate_hz must be in 1..1000, got %d", c.Sim.TickRateHz)
	}
	if c.Sim.PlaceIntervalTicks == 0 {
		return fmt.Errorf("sim.place_interval_ticks must be positive")
	}
	if _, err := c.Logging.ZapLevel(); err != nil {
		return err
	}
	return nil
}

// ZapLevel parses the configured log level.
func (l LoggingConfig) ZapLevel() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid logging.level %q: %w", l.Level, err)
	}
	return lvl, nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. YTDASH_SERVER_PORT.
const EnvPrefix = "YTDASH"

// Config is the root configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Export ExportConfig `yaml:"export"`
}

// DataConfig locates the trending CSV and controls preparation.
type DataConfig struct {
	Path           string `yaml:"path" validate:"required"`
	TopN           int    `yaml:"top_n" split_words:"true" validate:"min=1"`
	DefaultChannel string `yaml:"default_channel" split_words:"true"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port         int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout" split_words:"true" validate:"gte=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" split_words:"true" validate:"gte=0"`
}

// Addr returns the listen address for Port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// ExportConfig configures the offline SQLite export.
type ExportConfig struct {
	DBPath string `yaml:"db_path" split_words:"true" validate:"required"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path:           "trending.csv",
			TopN:           50,
			DefaultChannel: "Nihongo Mantappu",
		},
		Server: ServerConfig{
			Port:         8050,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Log:    LogConfig{Level: "info", Format: "text"},
		Export: ExportConfig{DBPath: "./ytdash.db"},
	}
}

// Load reads configuration from a YAML file, applies YTDASH_* environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

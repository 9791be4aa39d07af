package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	// Config captures everything the kycaml command needs.
	Config struct {
		Log     Log     `yaml:"log"     json:"log"`
		Review  Review  `yaml:"review"  json:"review"`
		Metrics Metrics `yaml:"metrics" json:"metrics"`
	}

	Log struct {
		Level  string `yaml:"level"  json:"level"  env:"KYCAML_LOG_LEVEL"  env-default:"info"`
		Format string `yaml:"format" json:"format" env:"KYCAML_LOG_FORMAT" env-default:"text"`
	}

	Review struct {
		Concurrency int  `yaml:"concurrency" json:"concurrency" env:"KYCAML_REVIEW_CONCURRENCY" env-default:"8"`
		Envelope    bool `yaml:"envelope"    json:"envelope"    env:"KYCAML_REVIEW_ENVELOPE"    env-default:"false"`
	}

	// Metrics.Textfile, when set, receives a prometheus text exposition after
	// each run for the node exporter textfile collector.
	Metrics struct {
		Textfile string `yaml:"textfile" json:"textfile" env:"KYCAML_METRICS_TEXTFILE"`
	}
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Load reads path (YAML, JSON, TOML or .env) when given, then environment
// variables, which take precedence. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("env read error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the command cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case FormatText, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log format %q: want %s or %s", c.Log.Format, FormatText, FormatJSON))
	}
	if c.Review.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("review concurrency must be positive, got %d", c.Review.Concurrency))
	}

	return errors.Join(errs...)
}

// SlogLevel parses Level ("debug", "info", "warn", "error", or offsets such as
// "warn+2").
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// Usage describes the environment variables Load understands.
func Usage() string {
	var b strings.Builder
	header := "Environment variables:"
	if desc, err := cleanenv.GetDescription(&Config{}, &header); err == nil {
		b.WriteString(desc)
	}
	return b.String()
}

package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Supported rate file formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type Config struct {
	RatesFile     string
	RatesFormat   string
	RatesJSONPath string
	HTTPAddr      string
	LogLevel      string
	LogFormat     string
}

// Load reads an optional .env file and returns a Config built from the
// environment. Unset variables take their defaults.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		RatesFile:     getEnv("LEDGER_RATES_FILE", "rates.json"),
		RatesFormat:   getEnv("LEDGER_RATES_FORMAT", ""),
		RatesJSONPath: getEnv("LEDGER_RATES_JSONPATH", ""),
		HTTPAddr:      getEnv("LEDGER_HTTP_ADDR", ":8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	if cfg.RatesFormat == "" {
		cfg.RatesFormat = InferRatesFormat(cfg.RatesFile)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	c.RatesFormat = strings.ToLower(c.RatesFormat)
	if c.RatesFormat != FormatJSON && c.RatesFormat != FormatCSV {
		return fmt.Errorf("unsupported rates format %q", c.RatesFormat)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}

	return nil
}

// InferRatesFormat picks the rate file format from its extension, falling
// back to JSON
func InferRatesFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}

// ParseLogLevel maps a level name onto a slog.Level
func ParseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// NewLogger builds the process logger described by c
func (c *Config) NewLogger() *slog.Logger {
	return c.newLogger(os.Stderr, slog.LevelDebug)
}

// NewConsoleLogger builds a logger for interactive sessions. Records below
// Error are dropped because the console already prints every rejection.
func (c *Config) NewConsoleLogger(w io.Writer) *slog.Logger {
	return c.newLogger(w, slog.LevelError)
}

func (c *Config) newLogger(w io.Writer, floor slog.Level) *slog.Logger {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if level < floor {
		level = floor
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Helper to get env with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

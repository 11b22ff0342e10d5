package config_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/tirasundara/ledger-service/internal/config"
)

var ledgerEnv = []string{
	"LEDGER_RATES_FILE",
	"LEDGER_RATES_FORMAT",
	"LEDGER_RATES_JSONPATH",
	"LEDGER_HTTP_ADDR",
	"LOG_LEVEL",
	"LOG_FORMAT",
}

// clearEnv unsets every ledger variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range ledgerEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.RatesFile != "rates.json" {
		t.Errorf("Expected rates file 'rates.json', got '%s'", cfg.RatesFile)
	}
	if cfg.RatesFormat != config.FormatJSON {
		t.Errorf("Expected format json, got '%s'", cfg.RatesFormat)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected addr ':8080', got '%s'", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("Expected info/text logging, got %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEDGER_RATES_FILE", "/etc/ledger/rates.CSV")
	t.Setenv("LEDGER_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.RatesFormat != config.FormatCSV {
		t.Errorf("Expected format inferred as csv, got '%s'", cfg.RatesFormat)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Errorf("Expected addr '127.0.0.1:9000', got '%s'", cfg.HTTPAddr)
	}
}

func TestLoad_FromDotEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "LEDGER_RATES_FILE=feed.json\nLEDGER_RATES_JSONPATH='$.data.rates'\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	// godotenv sets process variables; make sure they are dropped afterwards
	t.Cleanup(func() {
		os.Unsetenv("LEDGER_RATES_FILE")
		os.Unsetenv("LEDGER_RATES_JSONPATH")
	})

	cfg, err := config.Load(envFile)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.RatesFile != "feed.json" {
		t.Errorf("Expected rates file 'feed.json', got '%s'", cfg.RatesFile)
	}
	if cfg.RatesJSONPath != "$.data.rates" {
		t.Errorf("Expected JSONPath '$.data.rates', got '%s'", cfg.RatesJSONPath)
	}
}

func TestLoad_InvalidSettings(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"rates format", "LEDGER_RATES_FORMAT", "xml"},
		{"log level", "LOG_LEVEL", "loud"},
		{"log format", "LOG_FORMAT", "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := config.Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Errorf("Expected error for %s=%s, got nil", tt.key, tt.value)
			}
		})
	}
}

func TestInferRatesFormat(t *testing.T) {
	tests := map[string]string{
		"rates.json":    config.FormatJSON,
		"rates.csv":     config.FormatCSV,
		"RATES.CSV":     config.FormatCSV,
		"rates":         config.FormatJSON,
		"dir.csv/rates": config.FormatJSON,
	}

	for path, expected := range tests {
		if got := config.InferRatesFormat(path); got != expected {
			t.Errorf("Expected %s for %s, got %s", expected, path, got)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	level, err := config.ParseLogLevel("warn")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if level != slog.LevelWarn {
		t.Errorf("Expected %v, got %v", slog.LevelWarn, level)
	}
}

func TestNewConsoleLogger(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug", LogFormat: "text"}

	var buf bytes.Buffer
	logger := cfg.NewConsoleLogger(&buf)

	if logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Errorf("Expected warnings to be dropped by the console logger")
	}

	logger.Info("Deposit completed", "user", "alice")
	logger.Warn("Operation rejected", "user", "alice")
	if buf.Len() != 0 {
		t.Errorf("Expected no output for info and warn records, got %q", buf.String())
	}

	logger.Error("Rollback failed", "user", "alice")
	if !bytes.Contains(buf.Bytes(), []byte("Rollback failed")) {
		t.Errorf("Expected error record in output, got %q", buf.String())
	}
}

func TestNewLogger_UsesConfiguredLevel(t *testing.T) {
	cfg := &config.Config{LogLevel: "warn", LogFormat: "json"}
	logger := cfg.NewLogger()

	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("Expected info to be disabled at warn level")
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Errorf("Expected warn to be enabled at warn level")
	}
}

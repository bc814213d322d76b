package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestFromEnvUnsetReturnsNil(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("LOG_OUTPUT", "")
	if cfg := FromEnv(); cfg != nil {
		t.Fatalf("FromEnv() = %+v, want nil", cfg)
	}
}

func TestFromEnvDefaultsLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("LOG_OUTPUT", "")
	cfg := FromEnv()
	if cfg == nil {
		t.Fatal("FromEnv() = nil, want config")
	}
	if cfg.Level != "info" {
		t.Fatalf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Fatalf("Format = %q, want console", cfg.Format)
	}
}

func TestFromEnvReadsAll(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_OUTPUT", "stderr")
	cfg := FromEnv()
	if cfg == nil {
		t.Fatal("FromEnv() = nil, want config")
	}
	if cfg.Level != "debug" || cfg.Format != "json" || cfg.Output != "stderr" {
		t.Fatalf("FromEnv() = %+v", cfg)
	}
}

func TestNewFromEnvConfig(t *testing.T) {
	l, err := New(&Config{Level: "warn", Format: "json", Output: "stderr"}, "test-service")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("warn level should be enabled")
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info level should be disabled at warn")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(&Config{Level: "loud"}, "test-service"); !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("err = %v, want ErrInvalidLogLevel", err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for in, want := range cases {
		got, err := parseLevel(in)
		if err != nil {
			t.Fatalf("parseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

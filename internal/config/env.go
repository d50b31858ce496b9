package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvTodoDir       = "SIMPLETODO_DIR"
	EnvOpenFile      = "SIMPLETODO_FILE"
	EnvConfirmDelete = "SIMPLETODO_CONFIRM_DELETE"
	EnvLogDir        = "SIMPLETODO_LOG_DIR"
	EnvLogLevel      = "SIMPLETODO_LOG_LEVEL"
	EnvLogFormat     = "SIMPLETODO_LOG_FORMAT"
	EnvLogTimestamps = "SIMPLETODO_LOG_TIMESTAMPS"
	EnvLogCaller     = "SIMPLETODO_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvTodoDir); v != "" {
		cfg.TodoDir = v
	}
	if v := os.Getenv(EnvOpenFile); v != "" {
		cfg.OpenFile = v
	}
	if v := os.Getenv(EnvConfirmDelete); v != "" {
		cfg.ConfirmDelete = boolFromString(v)
	}
	if v := os.Getenv(EnvLogDir); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}

func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

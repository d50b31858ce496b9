package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Default values.
const (
	DefaultLogDir        = "~/.simpletodo/logs"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultConfirmDelete = true
	AppName              = "simpletodo"
)

// Config holds the full configuration for simpletodo.
type Config struct {
	// TodoDir is where the file prompt starts when no file is open.
	TodoDir string `toml:"todo_dir"`
	// OpenFile is loaded when the editor starts.
	OpenFile string `toml:"open_file"`

	// Ask before deleting selected tasks
	ConfirmDelete bool `toml:"confirm_delete"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TodoDir = ""
	cfg.OpenFile = ""
	cfg.ConfirmDelete = DefaultConfirmDelete
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = true
	cfg.LogCaller = false
}

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{AppName + ".toml", "." + AppName + ".toml"}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.simpletodo/simpletodo.toml first, then falls back to OS-specific
// config directories.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, "."+AppName, AppName+".toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, AppName, AppName+".toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# simpletodo configuration file
# Values can be overridden by SIMPLETODO_* environment variables or CLI flags

# Directory the load/save prompt starts in
# todo_dir = "~/todo"

# Task file opened at startup
# open_file = "~/todo/personal.todo"

# Ask before deleting selected tasks
confirm_delete = true

# Log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.simpletodo/logs"

# Logging: debug, info, warn, error
log_level = "info"
# Formatter: text, logfmt, json
log_format = "text"
log_timestamps = true
log_caller = false
`
}

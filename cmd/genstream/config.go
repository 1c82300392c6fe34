package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath = ".genstream.yaml"
	defaultWidth      = 80
	defaultLogLevel   = "warn"
	defaultLogFormat  = "console"
)

// config is the resolved CLI configuration. The same shape is read from
// the YAML config file.
type config struct {
	Model       string   `yaml:"model"`
	APIKey      string   `yaml:"api_key"`
	BaseURL     string   `yaml:"base_url"`
	System      string   `yaml:"system"`
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens"`
	Render      bool     `yaml:"render"`
	Width       int      `yaml:"width"`
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
}

// loadConfigFile reads a YAML config file. A missing file is tolerated only
// at the default path.
func loadConfigFile(path string) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && path == defaultConfigPath:
		return cfg, nil
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveConfig layers flag values over the environment over the file over
// defaults. flags holds only the flags the user set explicitly. envKey is
// the value of GEMINI_API_KEY.
func resolveConfig(file config, flags config, set map[string]bool, envKey string) (config, error) {
	cfg := file

	if envKey != "" {
		cfg.APIKey = envKey
	}

	if set["model"] {
		cfg.Model = flags.Model
	}
	if set["api-key"] {
		cfg.APIKey = flags.APIKey
	}
	if set["base-url"] {
		cfg.BaseURL = flags.BaseURL
	}
	if set["system"] {
		cfg.System = flags.System
	}
	if set["temperature"] {
		cfg.Temperature = flags.Temperature
	}
	if set["max-tokens"] {
		cfg.MaxTokens = flags.MaxTokens
	}
	if set["render"] {
		cfg.Render = flags.Render
	}
	if set["width"] {
		cfg.Width = flags.Width
	}
	if set["log-level"] {
		cfg.LogLevel = flags.LogLevel
	}
	if set["log-format"] {
		cfg.LogFormat = flags.LogFormat
	}

	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return config{}, fmt.Errorf("unknown log format %q: must be \"console\" or \"json\"", cfg.LogFormat)
	}
	if cfg.APIKey == "" {
		return config{}, fmt.Errorf("GEMINI_API_KEY not set (use --api-key flag, environment variable or config file)")
	}
	return cfg, nil
}

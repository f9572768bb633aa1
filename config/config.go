// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads serving configuration from an optional YAML file
// overlaid with environment variables.
//
// Precedence, lowest to highest: built-in defaults, the YAML file,
// environment variables. Variables use the CORE_ prefix with "__"
// separating key path levels, so CORE_SERVER__ADDR maps to server.addr
// and CORE_SERVER__READ_TIMEOUT to server.read_timeout.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the full serving configuration.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`
}

// ServerConfig controls the listener and HTTP server behavior.
type ServerConfig struct {
	Addr string `koanf:"addr"`
	H2C  bool   `koanf:"h2c"`

	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text or json
}

// SlogLevel maps the configured level name to a slog.Level.
// Unrecognized names fall back to info.
func (lc LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(lc.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a slog.Logger per the configured level and format.
func (lc LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lc.SlogLevel()}
	if strings.ToLower(lc.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	path      string
	envPrefix string
}

// WithFile sets the YAML file path. A missing file is not an error; a
// malformed one is. Default "config.yaml".
func WithFile(path string) LoadOption {
	return func(c *loadConfig) {
		c.path = path
	}
}

// WithEnvPrefix overrides the environment variable prefix. Default
// "CORE_".
func WithEnvPrefix(prefix string) LoadOption {
	return func(c *loadConfig) {
		c.envPrefix = prefix
	}
}

// Load reads the configuration, applying defaults, the YAML file, and
// environment overrides in that order.
func Load(opts ...LoadOption) (*Config, error) {
	lc := loadConfig{path: "config.yaml", envPrefix: "CORE_"}
	for _, opt := range opts {
		opt(&lc)
	}

	k := koanf.New(".")

	defaults := map[string]any{
		"server.addr":                ":8080",
		"server.read_header_timeout": 5 * time.Second,
		"server.read_timeout":        15 * time.Second,
		"server.write_timeout":       30 * time.Second,
		"server.idle_timeout":        60 * time.Second,
		"log.level":                  "info",
		"log.format":                 "text",
	}
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("config: set default %s: %w", key, err)
		}
	}

	if err := k.Load(file.Provider(lc.path), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", lc.path, err)
		}
	}

	if err := k.Load(env.Provider(lc.envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, lc.envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// Copyright 2025 Ian Lewis
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

// Package config defines configuration for the edictutil CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrConfig indicates an invalid configuration.
var ErrConfig = errors.New("invalid config")

// Config defines configuration for the edictutil CLI.
type Config struct {
	// BaseDir is the base directory holding the dictionary artifacts.
	BaseDir string `yaml:"base_dir"`

	// SegmenterDict is the path of the full-text backend's segmenter
	// dictionary file. Required for indexing and querying.
	SegmenterDict string `yaml:"segmenter_dict"`

	// StopTokens is the optional path of a stop token file for the
	// full-text backend.
	StopTokens string `yaml:"stop_tokens"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		LogLevel: "info",
	}
}

// Load reads the YAML config file at path, applied on top of defaults.
func Load(path string) (Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return fmt.Errorf("%w: base_dir must be set", ErrConfig)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: invalid log_level %q: %w", ErrConfig, c.LogLevel, err)
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

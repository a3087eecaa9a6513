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

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestLoad tests loading config files.
func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string

		expected Config
		err      bool
	}{
		{
			name: "full config",
			yaml: `
base_dir: /var/lib/edict
segmenter_dict: /usr/share/edict/dictionary.txt
stop_tokens: /usr/share/edict/stop_tokens.txt
log_level: debug
`,

			expected: Config{
				BaseDir:       "/var/lib/edict",
				SegmenterDict: "/usr/share/edict/dictionary.txt",
				StopTokens:    "/usr/share/edict/stop_tokens.txt",
				LogLevel:      "debug",
			},
		},
		{
			name: "defaults applied",
			yaml: "base_dir: /var/lib/edict\n",

			expected: Config{
				BaseDir:  "/var/lib/edict",
				LogLevel: "info",
			},
		},
		{
			name: "missing base_dir",
			yaml: "log_level: info\n",

			err: true,
		},
		{
			name: "invalid log level",
			yaml: "base_dir: /var/lib/edict\nlog_level: loud\n",

			err: true,
		},
		{
			name: "invalid yaml",
			yaml: "base_dir: [\n",

			err: true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.yml")
			if err := os.WriteFile(path, []byte(test.yaml), 0o600); err != nil {
				t.Fatal(err)
			}

			c, err := Load(path)
			if test.err {
				if err == nil {
					t.Fatal("Load: expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(test.expected, c); diff != "" {
				t.Fatalf("unexpected config (-want +got):\n%s", diff)
			}
		})
	}
}

// TestValidate tests that invalid configurations fail with ErrConfig.
func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config Config
	}{
		{
			name:   "missing base_dir",
			config: Config{LogLevel: "info"},
		},
		{
			name:   "invalid log_level",
			config: Config{BaseDir: "/var/lib/edict", LogLevel: "loud"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if err := test.config.Validate(); !errors.Is(err, ErrConfig) {
				t.Fatalf("Validate: got %v, want %v", err, ErrConfig)
			}
		})
	}
}

// TestSlogLevel tests log level parsing.
func TestSlogLevel(t *testing.T) {
	t.Parallel()

	c := Config{LogLevel: "warn"}
	if got := c.SlogLevel(); got != slog.LevelWarn {
		t.Fatalf("SlogLevel = %v, want %v", got, slog.LevelWarn)
	}

	c = Config{LogLevel: ""}
	if got := c.SlogLevel(); got != slog.LevelInfo {
		t.Fatalf("SlogLevel = %v, want %v", got, slog.LevelInfo)
	}
}

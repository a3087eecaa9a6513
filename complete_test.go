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

package edict_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-edict"
)

// TestIsComplete tests directory completeness checks.
func TestIsComplete(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		ok, err := edict.IsComplete(filepath.Join(t.TempDir(), "index"))
		if err != nil {
			t.Fatalf("IsComplete: %v", err)
		}
		if ok {
			t.Fatal("IsComplete = true, want false")
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "index")
		if err := os.Mkdir(dir, 0o750); err != nil {
			t.Fatal(err)
		}
		ok, err := edict.IsComplete(dir)
		if err != nil {
			t.Fatalf("IsComplete: %v", err)
		}
		if ok {
			t.Fatal("IsComplete = true, want false")
		}
	})

	t.Run("non-empty directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "index")
		if err := os.Mkdir(dir, 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "segments"), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		ok, err := edict.IsComplete(dir)
		if err != nil {
			t.Fatalf("IsComplete: %v", err)
		}
		if !ok {
			t.Fatal("IsComplete = false, want true")
		}
	})

	t.Run("plain file is removed", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index")
		if err := os.WriteFile(path, []byte("not a directory"), 0o600); err != nil {
			t.Fatal(err)
		}
		ok, err := edict.IsComplete(path)
		if err != nil {
			t.Fatalf("IsComplete: %v", err)
		}
		if ok {
			t.Fatal("IsComplete = true, want false")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("file still exists: %v", err)
		}
	})
}

// TestFileComplete tests file completeness checks.
func TestFileComplete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if edict.FileComplete(filepath.Join(dir, "missing")) {
		t.Fatal("FileComplete(missing) = true, want false")
	}

	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if edict.FileComplete(empty) {
		t.Fatal("FileComplete(empty) = true, want false")
	}

	full := filepath.Join(dir, "full")
	if err := os.WriteFile(full, []byte("data"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !edict.FileComplete(full) {
		t.Fatal("FileComplete(full) = false, want true")
	}

	if edict.FileComplete(dir) {
		t.Fatal("FileComplete(dir) = true, want false")
	}
}

// TestIndexPair tests completeness and removal of the index pair.
func TestIndexPair(t *testing.T) {
	t.Parallel()

	makePair := func(t *testing.T, withIdx, withDir bool) edict.IndexPair {
		t.Helper()

		base := t.TempDir()
		pair := edict.IndexPair{
			LineIndexPath: filepath.Join(base, "idx"),
			IndexDir:      filepath.Join(base, "index"),
		}
		if withIdx {
			if err := os.WriteFile(pair.LineIndexPath, []byte{0, 0, 0, 0}, 0o600); err != nil {
				t.Fatal(err)
			}
		}
		if withDir {
			if err := os.Mkdir(pair.IndexDir, 0o750); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(pair.IndexDir, "segments"), []byte("x"), 0o600); err != nil {
				t.Fatal(err)
			}
		}
		return pair
	}

	tests := []struct {
		name    string
		withIdx bool
		withDir bool

		expected bool
	}{
		{
			name: "nothing on disk",

			expected: false,
		},
		{
			name:    "line index only",
			withIdx: true,

			expected: false,
		},
		{
			name:    "index directory only",
			withDir: true,

			expected: false,
		},
		{
			name:    "both halves",
			withIdx: true,
			withDir: true,

			expected: true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			pair := makePair(t, test.withIdx, test.withDir)
			ok, err := pair.Complete()
			if err != nil {
				t.Fatalf("Complete: %v", err)
			}
			if ok != test.expected {
				t.Fatalf("Complete = %v, want %v", ok, test.expected)
			}

			if err := pair.Remove(); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if _, err := os.Stat(pair.LineIndexPath); !os.IsNotExist(err) {
				t.Fatalf("line index still exists: %v", err)
			}
			if _, err := os.Stat(pair.IndexDir); !os.IsNotExist(err) {
				t.Fatalf("index directory still exists: %v", err)
			}
		})
	}
}

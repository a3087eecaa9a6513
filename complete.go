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

package edict

import (
	"fmt"
	"os"
)

// IsComplete reports whether the directory at path holds a completed
// stage's output. A directory is complete when it exists and contains at
// least one file. A plain file found where the directory should be is
// removed so the next run can recreate it.
func IsComplete(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking %q: %w", path, err)
	}
	if !fi.IsDir() {
		if err := os.Remove(path); err != nil {
			return false, fmt.Errorf("removing %q: %w", path, err)
		}
		return false, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("reading %q: %w", path, err)
	}
	return len(entries) > 0, nil
}

// FileComplete reports whether the file at path exists and is non-empty.
func FileComplete(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular() && fi.Size() > 0
}

// IndexPair is the pair of index artifacts built from one raw dictionary
// file: the binary line-index file and the full-text backend's index
// directory. The two are only consistent together, so completeness and
// removal always operate on the pair as a unit.
type IndexPair struct {
	// LineIndexPath is the path of the line-index file.
	LineIndexPath string

	// IndexDir is the full-text index directory.
	IndexDir string
}

// Complete reports whether both halves of the pair exist. A line-index
// file without a full-text index, or vice versa, is incomplete and must be
// rebuilt from scratch.
func (p IndexPair) Complete() (bool, error) {
	if !FileComplete(p.LineIndexPath) {
		return false, nil
	}
	return IsComplete(p.IndexDir)
}

// Remove deletes both halves of the pair. It keeps going on error so a
// failure to remove one half does not leave the other behind, and returns
// the first error encountered.
func (p IndexPair) Remove() error {
	err := os.Remove(p.LineIndexPath)
	if err != nil && os.IsNotExist(err) {
		err = nil
	}
	if rmErr := os.RemoveAll(p.IndexDir); rmErr != nil && err == nil {
		err = rmErr
	}
	if err != nil {
		return fmt.Errorf("removing index pair: %w", err)
	}
	return nil
}

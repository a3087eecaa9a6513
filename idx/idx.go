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

package idx

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnitRange indicates a unit id outside the range of the index.
var ErrUnitRange = errors.New("unit out of range")

// Idx is an in-memory copy of a line-index file.
type Idx struct {
	offsets []uint32
}

// New reads a complete line-index from r.
func New(r io.Reader) (*Idx, error) {
	idx := &Idx{}

	s := NewScanner(r)
	for s.Scan() {
		idx.offsets = append(idx.offsets, s.Entry())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(idx.offsets) == 0 {
		return nil, fmt.Errorf("%w: missing reserved entry", ErrFormat)
	}

	return idx, nil
}

// Units returns the number of units the index covers.
func (idx *Idx) Units() int {
	return len(idx.offsets) - 1
}

// Offset returns the byte offset of the given unit's first line in the raw
// dictionary file.
func (idx *Idx) Offset(unit int) (int64, error) {
	if unit < 0 || unit >= idx.Units() {
		return 0, fmt.Errorf("%w: %d", ErrUnitRange, unit)
	}
	// The first entry is reserved; unit k's offset is at position k+1.
	return int64(idx.offsets[unit+1]), nil
}

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
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// ErrOffsetTooLarge indicates an offset that does not fit in a 32-bit
// line-index entry.
var ErrOffsetTooLarge = fmt.Errorf("%w: offset too large", ErrFormat)

// Writer writes a line-index file. Entries must be appended in unit order.
type Writer struct {
	f *os.File
	w *bufio.Writer
}

// Create creates the line-index file at path, truncating any existing
// file, and writes the reserved zero entry.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", path, err)
	}
	w := &Writer{
		f: f,
		w: bufio.NewWriter(f),
	}
	if err := w.writeEntry(0); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// WriteOffset appends the byte offset of the next unit's first line.
func (w *Writer) WriteOffset(offset int64) error {
	if offset < 0 || offset > math.MaxUint32 {
		return fmt.Errorf("%w: %d", ErrOffsetTooLarge, offset)
	}
	return w.writeEntry(uint32(offset))
}

// Close flushes buffered entries and closes the file.
func (w *Writer) Close() error {
	flushErr := w.w.Flush()
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("closing line index: %w", err)
	}
	if flushErr != nil {
		return fmt.Errorf("writing line index: %w", flushErr)
	}
	return nil
}

// Name returns the path of the line-index file.
func (w *Writer) Name() string {
	return w.f.Name()
}

func (w *Writer) writeEntry(entry uint32) error {
	var b [entrySize]byte
	binary.BigEndian.PutUint32(b[:], entry)
	if _, err := w.w.Write(b[:]); err != nil {
		return fmt.Errorf("writing line index: %w", err)
	}
	return nil
}

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
	"errors"
	"io"
)

// entrySize is the size of one line-index entry in bytes.
const entrySize = 4

// ErrFormat indicates a malformed line-index file.
var ErrFormat = errors.New("malformed line index")

// Scanner scans a line-index from start to end.
type Scanner struct {
	s *bufio.Scanner
}

// NewScanner returns a new Scanner that scans line-index entries from r.
func NewScanner(r io.Reader) *Scanner {
	s := &Scanner{
		s: bufio.NewScanner(bufio.NewReader(r)),
	}
	s.s.Split(splitEntry)
	return s
}

// Scan advances to the next index entry. It returns false if the scan
// stops either by reaching the end of the index or an error.
func (s *Scanner) Scan() bool {
	return s.s.Scan()
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Entry returns the current index entry.
func (s *Scanner) Entry() uint32 {
	return binary.BigEndian.Uint32(s.s.Bytes())
}

// splitEntry splits the input into fixed-size index entries.
func splitEntry(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if len(data) >= entrySize {
		return entrySize, data[:entrySize], nil
	}
	if atEOF {
		// A trailing fragment smaller than one entry.
		return 0, nil, ErrFormat
	}

	// Request more data.
	return 0, nil, nil
}

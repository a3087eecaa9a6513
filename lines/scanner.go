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

// Package lines implements a buffered line scanner that tracks the byte
// offset and 1-based number of each line.
//
// The scanner splits on '\n' only. The terminator is not part of the
// scanned line, so joining all scanned lines with '\n' reconstructs the
// input exactly (a file whose last line is unterminated reconstructs
// without a trailing '\n'). The internal buffer grows as needed up to 64
// MiB per line; a longer line fails the scan with bufio.ErrTooLong. Real
// dictionary lines are a few hundred bytes, so the cap only guards against
// scanning a file that is not line-oriented at all.
package lines

import (
	"bufio"
	"bytes"
	"io"
)

// initialBuffer is the scanner's initial buffer size.
const initialBuffer = 64 * 1024

// maxLine is the largest line the scanner will buffer.
const maxLine = 64 * 1024 * 1024

// Scanner is a forward-only, non-restartable scanner over the lines of a
// byte stream.
type Scanner struct {
	s *bufio.Scanner

	// next is the byte offset of the line that the next Scan will return.
	next int64

	// offset is the byte offset of the current line.
	offset int64

	// line is the 1-based number of the current line.
	line int
}

// NewScanner returns a new Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	s := &Scanner{
		s: bufio.NewScanner(r),
	}
	s.s.Buffer(make([]byte, 0, initialBuffer), maxLine)
	s.s.Split(s.splitLine)
	return s
}

// Scan advances to the next line. It returns false when the scan stops,
// either by reaching the end of the stream or on error.
func (s *Scanner) Scan() bool {
	if !s.s.Scan() {
		return false
	}
	s.line++
	return true
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Bytes returns the current line without its terminator. The returned
// buffer is only valid until the next call to Scan; callers that retain
// line data must copy it out.
func (s *Scanner) Bytes() []byte {
	return s.s.Bytes()
}

// Offset returns the byte offset in the underlying stream at which the
// current line starts.
func (s *Scanner) Offset() int64 {
	return s.offset
}

// Line returns the 1-based number of the current line.
func (s *Scanner) Line() int {
	return s.line
}

// splitLine splits the input on '\n' and accounts for consumed bytes so
// that Offset stays accurate.
func (s *Scanner) splitLine(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		s.offset = s.next
		s.next += int64(i + 1)
		return i + 1, data[:i], nil
	}
	if atEOF {
		// Final line without a terminator.
		s.offset = s.next
		s.next += int64(len(data))
		return len(data), data, nil
	}

	// Request more data.
	return 0, nil, nil
}

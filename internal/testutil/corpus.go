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

package testutil

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
)

// MakeLines makes n dictionary lines of varying lengths. The lines are
// ASCII, which is also valid EUC-JP.
func MakeLines(n int) [][]byte {
	lines := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		line := fmt.Sprintf("word%04d [reading%04d] /gloss %d/", i, i, i)
		// Pad some lines so offsets aren't uniform.
		for j := 0; j < i%7; j++ {
			line += "/extra gloss/"
		}
		lines = append(lines, []byte(line))
	}
	return lines
}

// MakeCorpus joins lines into a newline-terminated dictionary file.
func MakeCorpus(lines [][]byte) []byte {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// UnitOffsets returns the byte offset of the first line of each full
// unit of unitSize lines. Trailing lines that do not fill a unit are
// ignored.
func UnitOffsets(lines [][]byte, unitSize int) []int64 {
	var offsets []int64
	var pos int64
	for i, line := range lines {
		if i%unitSize == 0 && i+unitSize <= len(lines) {
			offsets = append(offsets, pos)
		}
		pos += int64(len(line)) + 1
	}
	return offsets
}

// MakeGzip compresses b with gzip.
func MakeGzip(b []byte) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// MakeZip creates a zip archive containing the given files.
func MakeZip(files map[string][]byte) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, b := range files {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write(b); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

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

package lines_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-edict/lines"
)

type scannedLine struct {
	Line   int
	Offset int64
	Text   string
}

func scanAll(t *testing.T, input string) []scannedLine {
	t.Helper()

	var scanned []scannedLine
	s := lines.NewScanner(strings.NewReader(input))
	for s.Scan() {
		scanned = append(scanned, scannedLine{
			Line:   s.Line(),
			Offset: s.Offset(),
			Text:   string(s.Bytes()),
		})
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	return scanned
}

// TestScanner tests line splitting, offsets, and line numbers.
func TestScanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string

		expected []scannedLine
	}{
		{
			name:  "empty input",
			input: "",

			expected: nil,
		},
		{
			name:  "single line",
			input: "foo\n",

			expected: []scannedLine{
				{Line: 1, Offset: 0, Text: "foo"},
			},
		},
		{
			name:  "multiple lines",
			input: "foo\nbar\nlonger line\n",

			expected: []scannedLine{
				{Line: 1, Offset: 0, Text: "foo"},
				{Line: 2, Offset: 4, Text: "bar"},
				{Line: 3, Offset: 8, Text: "longer line"},
			},
		},
		{
			name:  "no trailing newline",
			input: "foo\nbar",

			expected: []scannedLine{
				{Line: 1, Offset: 0, Text: "foo"},
				{Line: 2, Offset: 4, Text: "bar"},
			},
		},
		{
			name:  "empty lines",
			input: "\n\nfoo\n\n",

			expected: []scannedLine{
				{Line: 1, Offset: 0, Text: ""},
				{Line: 2, Offset: 1, Text: ""},
				{Line: 3, Offset: 2, Text: "foo"},
				{Line: 4, Offset: 6, Text: ""},
			},
		},
		{
			name:  "carriage return retained",
			input: "foo\r\nbar\r\n",

			expected: []scannedLine{
				{Line: 1, Offset: 0, Text: "foo\r"},
				{Line: 2, Offset: 5, Text: "bar\r"},
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := scanAll(t, test.input)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("unexpected lines (-want +got):\n%s", diff)
			}
		})
	}
}

// TestScanner_Reconstruct tests that joining all scanned lines with '\n'
// reconstructs the input.
func TestScanner_Reconstruct(t *testing.T) {
	t.Parallel()

	input := "foo\nbar\n\nbaz qux\n"
	scanned := scanAll(t, input)

	var b strings.Builder
	for _, line := range scanned {
		b.WriteString(line.Text)
		b.WriteByte('\n')
	}
	if got := b.String(); got != input {
		t.Fatalf("reconstructed input = %q, want %q", got, input)
	}
}

// TestScanner_LongLine tests that lines larger than the initial buffer are
// scanned whole.
func TestScanner_LongLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 200*1024)
	input := "short\n" + long + "\nlast\n"

	got := scanAll(t, input)
	expected := []scannedLine{
		{Line: 1, Offset: 0, Text: "short"},
		{Line: 2, Offset: 6, Text: long},
		{Line: 3, Offset: int64(6 + len(long) + 1), Text: "last"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

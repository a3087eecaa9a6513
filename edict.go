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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ianlewis/go-edict/idx"
	"github.com/ianlewis/go-edict/lines"
)

// LinesPerUnit is the number of consecutive dictionary lines that make up
// one index unit. Each unit is stored as one document in the full-text
// index and one entry in the line-index file.
const LinesPerUnit = 20

// ErrNotComplete indicates that a dictionary's on-disk artifacts are
// missing or partially built.
var ErrNotComplete = errors.New("dictionary is not complete")

// Dictionary is an indexed dictionary on local storage.
type Dictionary struct {
	layout Layout
	source Source

	lineIndex *idx.Idx
}

// Open opens the indexed dictionary at the given layout. It fails with
// ErrNotComplete when the raw dictionary file or the index pair are missing
// or incomplete.
func Open(layout Layout, source Source) (*Dictionary, error) {
	if !FileComplete(layout.DictPath()) {
		return nil, fmt.Errorf("%w: %q", ErrNotComplete, layout.DictPath())
	}
	ok, err := layout.IndexPair().Complete()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotComplete, layout.Base())
	}
	return &Dictionary{
		layout: layout,
		source: source,
	}, nil
}

// Name returns the dictionary name.
func (d *Dictionary) Name() string {
	return d.source.Name
}

// Layout returns the dictionary's on-disk layout.
func (d *Dictionary) Layout() Layout {
	return d.layout
}

// LineIndex returns an in-memory copy of the dictionary's line index,
// loading it on first use.
func (d *Dictionary) LineIndex() (*idx.Idx, error) {
	if d.lineIndex != nil {
		return d.lineIndex, nil
	}
	f, err := os.Open(d.layout.LineIndexPath())
	if err != nil {
		return nil, fmt.Errorf("opening line index: %w", err)
	}
	lineIndex, err := idx.New(f)
	if err != nil {
		return nil, err
	}
	d.lineIndex = lineIndex
	return d.lineIndex, nil
}

// Unit returns the decoded text lines of the index unit with the given id.
// Unit ids match the stored document ids in the full-text index, so a
// search hit can be resolved back to its source lines.
func (d *Dictionary) Unit(unit int) ([]string, error) {
	lineIndex, err := d.LineIndex()
	if err != nil {
		return nil, err
	}
	offset, err := lineIndex.Offset(unit)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(d.layout.DictPath())
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking dictionary: %w", err)
	}

	decoder := d.source.NewDecoder()
	var unitLines []string
	s := lines.NewScanner(f)
	for i := 0; i < LinesPerUnit; i++ {
		if !s.Scan() {
			break
		}
		text, err := decoder.Bytes(s.Bytes())
		if err != nil {
			return nil, fmt.Errorf("decoding dictionary line: %w", err)
		}
		unitLines = append(unitLines, string(text))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	return unitLines, nil
}

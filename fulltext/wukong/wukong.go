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

// Package wukong implements the fulltext contract on top of the wukong
// search engine. The engine's persistent storage folder is the index
// directory, so the directory-level completeness and cleanup rules of the
// pipeline apply to it unchanged.
package wukong

import (
	"fmt"
	"os"
	"strconv"

	"github.com/huichen/wukong/engine"
	"github.com/huichen/wukong/types"

	"github.com/ianlewis/go-edict/fulltext"
)

// Options configure the wukong engine.
type Options struct {
	// SegmenterDict is the path of the segmenter's token dictionary file.
	SegmenterDict string

	// StopTokenFile is the optional path of a stop token file.
	StopTokenFile string
}

// Writer is a fulltext.Writer backed by a wukong engine.
type Writer struct {
	engine *engine.Engine
	closed bool
}

// Compile-time check that the fulltext contract is satisfied.
var _ fulltext.Writer = (*Writer)(nil)

// OpenWriter returns a fulltext.OpenWriter that opens wukong indexes with
// the given options.
func OpenWriter(opts Options) fulltext.OpenWriter {
	return func(dir string, create bool) (fulltext.Writer, error) {
		return Open(dir, create, opts)
	}
}

// Open opens the wukong index at dir. When create is true any existing
// index at dir is removed first.
func Open(dir string, create bool, opts Options) (*Writer, error) {
	if create {
		if err := os.RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("removing %q: %w", dir, err)
		}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating %q: %w", dir, err)
	}

	searcher := &engine.Engine{}
	searcher.Init(types.EngineInitOptions{
		SegmenterDictionaries:   opts.SegmenterDict,
		StopTokenFile:           opts.StopTokenFile,
		UsePersistentStorage:    true,
		PersistentStorageFolder: dir,
	})
	return &Writer{engine: searcher}, nil
}

// AddDocument adds one document to the index. Unit ids are shifted by one
// so that they match the 1-based line-index entry positions.
func (w *Writer) AddDocument(doc fulltext.Document) error {
	unit, err := strconv.ParseUint(doc.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("parsing document id %q: %w", doc.ID, err)
	}
	w.engine.IndexDocument(unit+1, types.DocumentIndexData{Content: doc.Text}, false)
	return nil
}

// Commit blocks until all added documents are indexed and stored.
func (w *Writer) Commit() error {
	w.engine.FlushIndex()
	return nil
}

// Optimize is a no-op beyond a flush; the engine compacts its own storage.
func (w *Writer) Optimize() error {
	w.engine.FlushIndex()
	return nil
}

// Close shuts the engine down, flushing outstanding documents.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.engine.Close()
	return nil
}

// Search queries the index and returns the matching unit ids in rank
// order.
func (w *Writer) Search(query string) []int {
	resp := w.engine.Search(types.SearchRequest{Text: query})
	units := make([]int, 0, len(resp.Docs))
	for _, doc := range resp.Docs {
		units = append(units, int(doc.DocId-1))
	}
	return units
}

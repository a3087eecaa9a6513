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

// Package fulltext defines the contract between the index builder and the
// full-text search backend. The backend is an opaque collaborator: any
// engine that can store a document with a verbatim id and an analyzed text
// body, flush to disk, and compact its on-disk segments satisfies it.
package fulltext

// Document is one indexable unit of dictionary text.
type Document struct {
	// ID is the unit's sequential index, stored verbatim (not analyzed).
	ID string

	// Text is the unit's decoded text. It is analyzed/tokenized by the
	// backend and not stored.
	Text string
}

// Writer builds a full-text index on disk.
type Writer interface {
	// AddDocument adds one document to the index. The document is not
	// guaranteed to be searchable or durable until Commit.
	AddDocument(doc Document) error

	// Commit flushes added documents to disk.
	Commit() error

	// Optimize compacts the index's on-disk segments.
	Optimize() error

	// Close releases the index. Close does not imply Commit.
	Close() error
}

// OpenWriter opens a full-text index at dir. When create is true any
// existing index at dir is replaced.
type OpenWriter func(dir string, create bool) (Writer, error)

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
	"os"
	"path/filepath"
	"sync"

	"github.com/ianlewis/go-edict/fulltext"
)

// FakeIndex is an in-memory fulltext.Writer that records calls. It
// writes a marker file into its directory so completeness checks
// behave like a real backend.
type FakeIndex struct {
	mu sync.Mutex

	Docs      []fulltext.Document
	Commits   int
	Optimizes int
	Closed    bool

	// OnAdd, if set, is called after each document is recorded.
	OnAdd func(docs int)

	// AddErr is returned from AddDocument when set.
	AddErr error
}

var _ fulltext.Writer = (*FakeIndex)(nil)

// OpenFake returns a fulltext.OpenWriter that creates the given
// FakeIndex's backing directory and returns it.
func OpenFake(fake *FakeIndex) fulltext.OpenWriter {
	return func(dir string, create bool) (fulltext.Writer, error) {
		if create {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, err
			}
			if err := os.WriteFile(filepath.Join(dir, "segments"), []byte{}, 0o600); err != nil {
				return nil, err
			}
		}
		return fake, nil
	}
}

// AddDocument implements fulltext.Writer.AddDocument.
func (f *FakeIndex) AddDocument(doc fulltext.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AddErr != nil {
		return f.AddErr
	}
	f.Docs = append(f.Docs, doc)
	if f.OnAdd != nil {
		f.OnAdd(len(f.Docs))
	}
	return nil
}

// Commit implements fulltext.Writer.Commit.
func (f *FakeIndex) Commit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Commits++
	return nil
}

// Optimize implements fulltext.Writer.Optimize.
func (f *FakeIndex) Optimize() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Optimizes++
	return nil
}

// Close implements fulltext.Writer.Close.
func (f *FakeIndex) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

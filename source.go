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
	"path/filepath"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// Format is the compression format of a remote dictionary source.
type Format int

const (
	// FormatGzip is a gzip compressed single file.
	FormatGzip Format = iota

	// FormatDictzip is a dictzip (random access gzip) compressed single
	// file. Some dictionary mirrors distribute .dz files.
	FormatDictzip

	// FormatZip is a zip archive containing one or more files, typically a
	// pre-built index pair.
	FormatZip
)

// Source describes a remote dictionary source. A Source is constructed once
// per download request and is read-only thereafter.
type Source struct {
	// Name is the human-readable dictionary name.
	Name string

	// URL is the location the dictionary is downloaded from. Plain HTTP
	// GET. No authentication, no range requests.
	URL string

	// Format is the source's compression format.
	Format Format

	// ExpectedSize is the expected uncompressed size in bytes. It is used
	// to scale download progress and as a fallback when an archive entry
	// does not declare its size.
	ExpectedSize int64

	// ExpectedLines is the approximate number of lines in the raw
	// dictionary file, used to scale indexing progress. Zero when unknown.
	ExpectedLines int

	// Encoding is the raw dictionary file's text encoding. When nil the
	// file is assumed to be EUC-JP, which is what EDICT and KANJIDIC use.
	Encoding encoding.Encoding
}

// NewDecoder returns a decoder translating the source's text encoding to
// UTF-8.
func (s *Source) NewDecoder() *encoding.Decoder {
	e := s.Encoding
	if e == nil {
		e = japanese.EUCJP
	}
	return e.NewDecoder()
}

// EdictGz is the well-known gzip compressed EDICT dictionary file.
func EdictGz() Source {
	return Source{
		Name:          "EDICT",
		URL:           "http://ftp.monash.edu.au/pub/nihongo/edict.gz",
		Format:        FormatGzip,
		ExpectedSize:  10304902,
		ExpectedLines: 172280,
	}
}

// EdictIndexZip is the well-known zip archive containing a pre-built EDICT
// full-text index.
func EdictIndexZip() Source {
	return Source{
		Name:         "EDICT index",
		URL:          "http://baka.sk/aedict/edict-lucene.zip",
		Format:       FormatZip,
		ExpectedSize: 10304902,
	}
}

// KanjidicIndexZip is the well-known zip archive containing a pre-built
// KANJIDIC full-text index.
func KanjidicIndexZip() Source {
	return Source{
		Name:         "KANJIDIC index",
		URL:          "http://baka.sk/aedict/kanjidic-lucene.zip",
		Format:       FormatZip,
		ExpectedSize: 1515963,
	}
}

// Layout is the on-disk layout of an indexed dictionary under a base
// directory.
type Layout struct {
	base string
}

// NewLayout returns the layout rooted at the given base directory.
func NewLayout(base string) Layout {
	return Layout{base: base}
}

// Base returns the base directory.
func (l Layout) Base() string {
	return l.base
}

// DictPath returns the path of the raw decompressed dictionary file.
func (l Layout) DictPath() string {
	return filepath.Join(l.base, "edict")
}

// LineIndexPath returns the path of the binary line-index file.
func (l Layout) LineIndexPath() string {
	return filepath.Join(l.base, "idx")
}

// IndexDir returns the full-text backend's index directory.
func (l Layout) IndexDir() string {
	return filepath.Join(l.base, "index")
}

// KanjidicIndexDir returns the full-text index directory for the companion
// KANJIDIC dictionary.
func (l Layout) KanjidicIndexDir() string {
	return filepath.Join(l.base, "index-kanjidic")
}

// IndexPair returns the dictionary's index pair.
func (l Layout) IndexPair() IndexPair {
	return IndexPair{
		LineIndexPath: l.LineIndexPath(),
		IndexDir:      l.IndexDir(),
	}
}

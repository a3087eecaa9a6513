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

// Package idx implements reading and writing line-index files.
//
// A line-index file maps index units (fixed-size batches of dictionary
// lines) to byte offsets in the raw dictionary file. It is a flat sequence
// of 32-bit big-endian unsigned integers:
//  1. The first entry is a reserved zero, written before any unit.
//  2. Entry k+1 (0-based) is the byte offset of unit k's first line in the
//     raw dictionary file.
//
// The reserved entry means offsets are found at position unit+1; it is kept
// for compatibility with existing index files and lookups that number units
// from 1. A file of n+1 entries therefore indexes n units, and a search
// result's stored document id can be resolved to a seek offset with a
// single entry read.
package idx

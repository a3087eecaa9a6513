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

// Package edict implements downloading and indexing of EDICT format
// dictionaries in pure Go.
//
// An indexed dictionary consists of three on-disk artifacts under a base
// directory:
//  1. The raw dictionary text file (e.g. "edict"). One entry per line,
//     encoded in the dictionary's declared encoding (EUC-JP for EDICT).
//  2. A line-index file (e.g. "idx") mapping index units to the byte offset
//     of the unit's first line in the raw file. See the idx package.
//  3. A full-text index directory (e.g. "index") owned by an opaque
//     full-text backend. See the fulltext package.
//
// The line-index file and the full-text index are only meaningful together
// and are always built and removed together. The pipeline package sequences
// download, unpacking and indexing, and treats the two index artifacts as a
// single pair for completeness checks and cleanup.
package edict

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

// Package indexer builds the index pair for a raw dictionary file: the
// full-text index and the line-index file.
//
// The builder batches every 20 consecutive lines into one index unit. Each
// unit becomes one full-text document (id stored verbatim, decoded text
// analyzed) and one line-index entry holding the byte offset of the unit's
// first line. A trailing run of fewer than 20 lines does not form a unit
// and is dropped; existing line-index files were built this way, so the
// quirk is part of the format.
package indexer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/ianlewis/go-edict"
	"github.com/ianlewis/go-edict/fulltext"
	"github.com/ianlewis/go-edict/idx"
	"github.com/ianlewis/go-edict/lines"
)

// reportEvery is the number of lines between progress reports.
const reportEvery = 1000

// checkpointEvery is the number of lines between full-text index
// checkpoints (commit + optimize). Checkpoints trade indexing throughput
// for bounded recovery cost and a bounded backend working set.
const checkpointEvery = 100000

// Options configure an index build.
type Options struct {
	// Open opens the full-text index. Required.
	Open fulltext.OpenWriter

	// Source describes the dictionary being indexed. Its encoding decodes
	// unit text and its expected line count scales progress.
	Source edict.Source

	// Observer receives progress snapshots. May be nil.
	Observer edict.Observer
}

// Build reads the raw dictionary file at dictPath and builds the index
// pair from scratch, replacing any artifacts already at the pair's paths.
//
// Cancellation is polled after every line. On cancellation or error both
// halves of the pair are deleted; a partially built pair is never left on
// disk, so the next run rebuilds from unit zero.
func Build(ctx context.Context, dictPath string, pair edict.IndexPair, opts Options) error {
	f, err := os.Open(dictPath)
	if err != nil {
		return fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()

	idxWriter, err := idx.Create(pair.LineIndexPath)
	if err != nil {
		removePair(pair)
		return err
	}
	writer, err := opts.Open(pair.IndexDir, true)
	if err != nil {
		idxWriter.Close()
		removePair(pair)
		return fmt.Errorf("opening full-text index: %w", err)
	}

	if err := build(ctx, f, idxWriter, writer, opts); err != nil {
		idxWriter.Close()
		writer.Close()
		removePair(pair)
		return err
	}

	if err := idxWriter.Close(); err != nil {
		writer.Close()
		removePair(pair)
		return err
	}
	if err := writer.Close(); err != nil {
		removePair(pair)
		return fmt.Errorf("closing full-text index: %w", err)
	}
	return nil
}

// build runs the indexing loop against open index writers.
func build(ctx context.Context, f *os.File, idxWriter *idx.Writer, writer fulltext.Writer, opts Options) error {
	opts.Observer.Report(edict.Progress{
		Message: "Indexing",
		Max:     opts.Source.ExpectedLines,
	})

	decoder := opts.Source.NewDecoder()
	s := lines.NewScanner(f)

	var unitBuf bytes.Buffer
	var unitStart int64
	unit := 0
	linesInUnit := 0
	for s.Scan() {
		if linesInUnit == 0 {
			unitStart = s.Offset()
		}
		unitBuf.Write(s.Bytes())
		unitBuf.WriteByte('\n')
		linesInUnit++

		if linesInUnit == edict.LinesPerUnit {
			text, err := decoder.Bytes(unitBuf.Bytes())
			if err != nil {
				return fmt.Errorf("decoding unit %d: %w", unit, err)
			}
			err = writer.AddDocument(fulltext.Document{
				ID:   strconv.Itoa(unit),
				Text: string(text),
			})
			if err != nil {
				return fmt.Errorf("indexing unit %d: %w", unit, err)
			}
			if err := idxWriter.WriteOffset(unitStart); err != nil {
				return err
			}
			unit++
			linesInUnit = 0
			unitBuf.Reset()
		}

		if s.Line()%reportEvery == 0 {
			opts.Observer.Report(edict.Progress{
				Current: s.Line(),
				Max:     opts.Source.ExpectedLines,
			})
		}
		if s.Line()%checkpointEvery == 0 {
			if err := writer.Commit(); err != nil {
				return fmt.Errorf("committing full-text index: %w", err)
			}
			if err := writer.Optimize(); err != nil {
				return fmt.Errorf("optimizing full-text index: %w", err)
			}
		}
		if err := ctx.Err(); err != nil {
			//nolint:wrapcheck // cancellation is not wrapped into an error chain.
			return err
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("reading dictionary: %w", err)
	}

	// Close does not imply Commit, so flush before the final compaction.
	if err := writer.Commit(); err != nil {
		return fmt.Errorf("committing full-text index: %w", err)
	}
	if err := writer.Optimize(); err != nil {
		return fmt.Errorf("optimizing full-text index: %w", err)
	}
	return nil
}

// removePair deletes both index artifacts. Cleanup failures are logged,
// not escalated; the primary error dominates.
func removePair(pair edict.IndexPair) {
	if err := pair.Remove(); err != nil {
		slog.Warn("failed to remove index pair",
			"lineIndex", pair.LineIndexPath,
			"indexDir", pair.IndexDir,
			"err", err)
	}
}

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

// Package pipeline sequences the download, unpack and index stages that
// turn a remote dictionary source into a searchable local dictionary.
//
// A pipeline run executes synchronously on the calling goroutine; callers
// that need it off their main flow run it on one background goroutine of
// their own. The run never spawns further workers. Progress flows to the
// configured observer, and cancellation flows in through the context; the
// worker polls it cooperatively at chunk and line granularity, so
// cancellation latency is bounded by one 32 KiB chunk read or one line
// read.
//
// Each stage checks whether its output is already complete and skips
// itself if so. Stages are all-or-nothing: a failed or cancelled stage
// removes its partial output and the next run redoes the whole stage.
// Exactly one terminal progress snapshot is delivered per run, before Run
// returns.
//
// A Pipeline is single-use: Run may be called at most once, and a new
// Pipeline is constructed for each retry. A pipeline's target directory
// must not be shared with a concurrent run; the Pipeline rejects repeat
// Run calls on the same value, but exclusion across processes is the
// caller's responsibility.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/ianlewis/go-edict"
	"github.com/ianlewis/go-edict/fetch"
	"github.com/ianlewis/go-edict/fulltext"
	"github.com/ianlewis/go-edict/indexer"
)

// State is the pipeline's lifecycle state.
type State int32

const (
	// StateIdle is the state before Run is called.
	StateIdle State = iota

	// StateDownloading covers network retrieval. For single-file sources
	// decompression happens while downloading, so this state covers
	// decoding too.
	StateDownloading

	// StateUnpacking covers zip archive extraction.
	StateUnpacking

	// StateIndexing covers building the index pair.
	StateIndexing

	// StateDone is the terminal state of a successful run.
	StateDone

	// StateCancelled is the terminal state of a cancelled run.
	StateCancelled

	// StateFailed is the terminal state of a failed run.
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDownloading:
		return "downloading"
	case StateUnpacking:
		return "unpacking"
	case StateIndexing:
		return "indexing"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// ErrRunning indicates that Run was already called on this Pipeline.
var ErrRunning = errors.New("pipeline Run already called")

// errNoBackend indicates a raw dictionary source configured without a
// full-text backend.
var errNoBackend = errors.New("no full-text backend configured")

// Config configures a Pipeline. All collaborators are injected; the
// pipeline holds no process-wide state.
type Config struct {
	// Source is the remote dictionary source.
	Source edict.Source

	// Layout is the dictionary's on-disk layout.
	Layout edict.Layout

	// TargetDir is the extraction directory for zip sources. Defaults to
	// the layout's full-text index directory.
	TargetDir string

	// Open opens the full-text index for indexing. Required for
	// single-file sources; unused for zip sources, which ship a pre-built
	// index.
	Open fulltext.OpenWriter

	// Client is the HTTP client used for downloads. Defaults to
	// http.DefaultClient.
	Client *http.Client

	// Observer receives progress snapshots. The pipeline calls it from
	// its worker goroutine and never blocks on anything while doing so.
	Observer edict.Observer
}

// Pipeline runs the download-and-index pipeline for one dictionary.
type Pipeline struct {
	cfg   Config
	state atomic.Int32
}

// New returns an idle pipeline for the given configuration.
func New(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// State returns the pipeline's current state. It may be read from any
// goroutine.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Run executes the pipeline to completion, cancellation or failure. It
// returns context.Canceled (or context.DeadlineExceeded) when cancelled,
// and the stage error on failure. The terminal progress snapshot is
// delivered before Run returns.
func (p *Pipeline) Run(ctx context.Context) error {
	if !p.state.CompareAndSwap(int32(StateIdle), int32(StateDownloading)) {
		return ErrRunning
	}

	err := p.run(ctx)
	switch {
	case err == nil:
		p.state.Store(int32(StateDone))
		p.cfg.Observer.Report(edict.Progress{Message: "Done", Terminal: true})
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		// Cancellation is not an error condition; no error is surfaced.
		p.state.Store(int32(StateCancelled))
		p.cfg.Observer.Report(edict.Progress{Message: "Cancelled", Terminal: true})
	default:
		p.state.Store(int32(StateFailed))
		p.cfg.Observer.Report(edict.Progress{
			Message:  fmt.Sprintf("Failed to download %s: %v", p.cfg.Source.Name, err),
			Err:      err,
			Terminal: true,
		})
	}
	return err
}

func (p *Pipeline) run(ctx context.Context) error {
	if p.cfg.Source.Format == edict.FormatZip {
		return p.runPrebuilt(ctx)
	}
	return p.runRaw(ctx)
}

// runRaw downloads and decompresses the raw dictionary file, then builds
// the index pair from it.
func (p *Pipeline) runRaw(ctx context.Context) error {
	if p.cfg.Open == nil {
		return errNoBackend
	}

	dictPath := p.cfg.Layout.DictPath()
	if edict.FileComplete(dictPath) {
		slog.Debug("dictionary already downloaded", "path", dictPath)
	} else {
		p.state.Store(int32(StateDownloading))
		if err := fetch.File(ctx, p.cfg.Source, dictPath, p.fetchOpts()); err != nil {
			return err
		}
	}

	pair := p.cfg.Layout.IndexPair()
	ok, err := pair.Complete()
	if err != nil {
		return err
	}
	if ok {
		slog.Debug("index pair already built",
			"lineIndex", pair.LineIndexPath,
			"indexDir", pair.IndexDir)
		return nil
	}

	p.state.Store(int32(StateIndexing))
	return indexer.Build(ctx, dictPath, pair, indexer.Options{
		Open:     p.cfg.Open,
		Source:   p.cfg.Source,
		Observer: p.cfg.Observer,
	})
}

// runPrebuilt downloads a zip archive containing a pre-built index pair
// and extracts it into the target directory.
func (p *Pipeline) runPrebuilt(ctx context.Context) error {
	dir := p.cfg.TargetDir
	if dir == "" {
		dir = p.cfg.Layout.IndexDir()
	}

	ok, err := edict.IsComplete(dir)
	if err != nil {
		return err
	}
	if ok {
		slog.Debug("index already unpacked", "dir", dir)
		return nil
	}

	p.state.Store(int32(StateDownloading))
	spool, err := fetch.Download(ctx, p.cfg.Source, p.fetchOpts())
	if err != nil {
		return err
	}
	defer func() {
		spool.Close()
		if err := os.Remove(spool.Name()); err != nil {
			slog.Warn("failed to remove spool file", "path", spool.Name(), "err", err)
		}
	}()

	p.state.Store(int32(StateUnpacking))
	return fetch.Unzip(ctx, spool, p.cfg.Source, dir, p.fetchOpts())
}

func (p *Pipeline) fetchOpts() fetch.Options {
	return fetch.Options{
		Client:   p.cfg.Client,
		Observer: p.cfg.Observer,
	}
}

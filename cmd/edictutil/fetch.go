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

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-edict"
	"github.com/ianlewis/go-edict/config"
	"github.com/ianlewis/go-edict/fulltext/wukong"
	"github.com/ianlewis/go-edict/pipeline"
)

var fetchCommand = &cli.Command{
	Name:  "fetch",
	Usage: "Download the EDICT dictionary and build its index",
	Description: `Download the EDICT dictionary file, decompress it and build the full-text
and line indexes. Stages whose output already exists are skipped. Press
Ctrl-C to cancel; partial output is removed.`,
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		initLogging(cfg)

		layout := edict.NewLayout(cfg.BaseDir)
		return runPipeline(c.Context, pipeline.Config{
			Source: edict.EdictGz(),
			Layout: layout,
			Open: wukong.OpenWriter(wukong.Options{
				SegmenterDict: cfg.SegmenterDict,
				StopTokenFile: cfg.StopTokens,
			}),
			Observer: newConsoleObserver(c.App.Writer).observe,
		})
	},
}

var fetchIndexCommand = &cli.Command{
	Name:  "fetch-index",
	Usage: "Download a pre-built full-text index",
	Description: `Download a zip archive containing a pre-built full-text index and unpack
it, skipping the local indexing step entirely.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "kanjidic",
			Usage: "download the KANJIDIC index instead of the EDICT index",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		initLogging(cfg)

		layout := edict.NewLayout(cfg.BaseDir)
		source := edict.EdictIndexZip()
		targetDir := layout.IndexDir()
		if c.Bool("kanjidic") {
			source = edict.KanjidicIndexZip()
			targetDir = layout.KanjidicIndexDir()
		}

		return runPipeline(c.Context, pipeline.Config{
			Source:    source,
			Layout:    layout,
			TargetDir: targetDir,
			Observer:  newConsoleObserver(c.App.Writer).observe,
		})
	},
}

// runPipeline runs the pipeline on the calling goroutine with Ctrl-C
// wired to cancellation. A cancelled run is not an error.
func runPipeline(ctx context.Context, cfg pipeline.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	err := pipeline.New(cfg).Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// initLogging configures the process-wide logger from the CLI config.
func initLogging(cfg config.Config) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
}

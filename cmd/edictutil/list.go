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
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-edict"
	"github.com/ianlewis/go-edict/idx"
)

var listCommand = &cli.Command{
	Name:  "list",
	Usage: "List local dictionary artifacts",
	Description: `List the dictionary artifacts under the base directory along with their
size and completeness.`,
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		initLogging(cfg)

		layout := edict.NewLayout(cfg.BaseDir)

		tbl := table.New("ARTIFACT", "PATH", "COMPLETE", "SIZE", "UNITS")
		tbl.WithWriter(c.App.Writer)

		tbl.AddRow("dictionary", layout.DictPath(),
			edict.FileComplete(layout.DictPath()),
			fileSize(layout.DictPath()), "")

		units := ""
		if lineIndex, err := openLineIndex(layout.LineIndexPath()); err == nil {
			units = humanize.Comma(int64(lineIndex.Units()))
		}
		tbl.AddRow("line index", layout.LineIndexPath(),
			edict.FileComplete(layout.LineIndexPath()),
			fileSize(layout.LineIndexPath()), units)

		for _, dir := range []struct {
			name string
			path string
		}{
			{"full-text index", layout.IndexDir()},
			{"kanjidic index", layout.KanjidicIndexDir()},
		} {
			complete, err := edict.IsComplete(dir.path)
			if err != nil {
				return err
			}
			tbl.AddRow(dir.name, dir.path, complete, "", "")
		}

		tbl.Print()
		return nil
	},
}

func openLineIndex(path string) (*idx.Idx, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by callers as needed.
	}
	defer f.Close()
	return idx.New(f)
}

func fileSize(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return humanize.Bytes(uint64(fi.Size()))
}

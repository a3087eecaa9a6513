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
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-edict"
	"github.com/ianlewis/go-edict/fulltext/wukong"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "Search the indexed dictionary",
	ArgsUsage: "[QUERY]",
	Description: `Search the full-text index and print the matching dictionary entries.
The dictionary must have been fetched and indexed first.`,
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: expected exactly one query argument", ErrFlagParse)
		}
		query := c.Args().Get(0)

		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		initLogging(cfg)

		layout := edict.NewLayout(cfg.BaseDir)
		dict, err := edict.Open(layout, edict.EdictGz())
		if err != nil {
			return err
		}

		w, err := wukong.Open(layout.IndexDir(), false, wukong.Options{
			SegmenterDict: cfg.SegmenterDict,
			StopTokenFile: cfg.StopTokens,
		})
		if err != nil {
			return err
		}
		defer w.Close()

		for _, unit := range w.Search(query) {
			unitLines, err := dict.Unit(unit)
			if err != nil {
				return err
			}
			for _, line := range unitLines {
				fmt.Fprintln(c.App.Writer, line)
			}
		}
		return nil
	},
}

var lookupCommand = &cli.Command{
	Name:      "lookup",
	Usage:     "Print one index unit by id",
	ArgsUsage: "[UNIT]",
	Description: `Resolve an index unit id to its dictionary lines using the line index and
print them.`,
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: expected exactly one unit id argument", ErrFlagParse)
		}
		var unit int
		if _, err := fmt.Sscanf(c.Args().Get(0), "%d", &unit); err != nil {
			return fmt.Errorf("%w: invalid unit id %q", ErrFlagParse, c.Args().Get(0))
		}

		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		initLogging(cfg)

		dict, err := edict.Open(edict.NewLayout(cfg.BaseDir), edict.EdictGz())
		if err != nil {
			return err
		}
		unitLines, err := dict.Unit(unit)
		if err != nil {
			return err
		}
		for _, line := range unitLines {
			fmt.Fprintln(c.App.Writer, line)
		}
		return nil
	},
}

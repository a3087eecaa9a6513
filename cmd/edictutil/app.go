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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-edict/config"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrEdictutil is a parent error for all command errors.
var ErrEdictutil = errors.New("edictutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrEdictutil)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This is done because `edictutil --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// loadConfig loads the CLI configuration from the --config flag or builds
// one from the command line flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}

	cfg := config.Default()
	cfg.BaseDir = c.String("base-dir")
	if cfg.BaseDir == "" {
		cfg.BaseDir = defaultBaseDir()
	}
	cfg.SegmenterDict = c.String("segmenter-dict")
	cfg.StopTokens = c.String("stop-tokens")
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	versionInfo.Name = filepath.Base(os.Args[0])
	versionInfo.Description = "EDICT dictionary download and index utility."
	fmt.Fprintln(c.App.Writer, versionInfo.String())
	return nil
}

func newEdictApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Download and search EDICT dictionaries.",
		Description: strings.Join([]string{
			"EDICT dictionary utility written in Go.",
			"http://github.com/ianlewis/go-edict",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "load configuration from `FILE`",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:    "base-dir",
				Usage:   "store dictionary files in `DIR`",
				Aliases: []string{"d"},
			},
			&cli.StringFlag{
				Name:  "segmenter-dict",
				Usage: "full-text segmenter dictionary `FILE`",
			},
			&cli.StringFlag{
				Name:  "stop-tokens",
				Usage: "full-text stop token `FILE`",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			fetchCommand,
			fetchIndexCommand,
			queryCommand,
			lookupCommand,
			listCommand,
		},
	}
}

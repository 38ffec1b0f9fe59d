// Copyright 2026 Ian Lewis
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
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-ndict"
	"github.com/ianlewis/go-ndict/internal/config"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrNdict is a parent error for all command errors.
var ErrNdict = errors.New("ndict")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrNdict)

var copyrightNames = []string{
	"2026 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// which prints "command foo not found" for `ndict --help foo`. Commands
	// define their own help flag instead.
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

func helpFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:               "help",
		Usage:              "print this help text and exit",
		Aliases:            []string{"h"},
		DisableDefaultText: true,
	}
}

// onUsageError marks flag errors so that they map to ExitCodeFlagParseError.
func onUsageError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %w", ErrFlagParse, err)
}

// dictFlags are the flags locating a built dictionary.
func dictFlags() []cli.Flag {
	defaults := config.Default().Output
	return []cli.Flag{
		&cli.PathFlag{
			Name:    "dir",
			Usage:   "read the dictionary files from `DIR`",
			Aliases: []string{"d"},
			Value:   defaults.Dir,
		},
		&cli.StringFlag{
			Name:  "table",
			Usage: "code table file `NAME`",
			Value: defaults.Table,
		},
		&cli.StringFlag{
			Name:  "blob",
			Usage: "blob file `NAME`; NAME.dz is tried if NAME does not exist",
			Value: defaults.Blob,
		},
		&cli.StringFlag{
			Name:  "index",
			Usage: "index file `NAME`",
			Value: defaults.Index,
		},
	}
}

// openDict opens the dictionary named by the dictFlags.
func openDict(c *cli.Context) (*ndict.Dictionary, error) {
	out := config.OutputConfig{
		Dir:   c.Path("dir"),
		Table: c.String("table"),
		Blob:  c.String("blob"),
		Index: c.String("index"),
	}
	//nolint:wrapcheck // errors include the file path.
	return ndict.Open(ndict.Paths{
		Table: out.TablePath(),
		Blob:  out.BlobPath(),
		Index: out.IndexPath(),
	})
}

func printVersion(c *cli.Context) error {
	info := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, "%s %s\n%s\n", c.App.Name, info.GitVersion, c.App.Copyright)
	//nolint:wrapcheck // error is from writing to the terminal.
	return err
}

func newNdictApp() *cli.App {
	return &cli.App{
		Name:  "ndict",
		Usage: "Build and query Huffman compressed dictionaries.",
		Description: strings.Join([]string{
			"Builds a compact dictionary from a JSON Lines word corpus",
			"and looks up words in it.",
			"http://github.com/ianlewis/go-ndict",
		}, "\n"),
		Flags: []cli.Flag{
			// Special flags are shown at the end.
			helpFlag(),
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
		OnUsageError:    onUsageError,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			buildCommand(),
			lookupCommand(),
			verifyCommand(),
			statsCommand(),
		},
	}
}

// showHelp prints the command help if the help flag is set.
func showHelp(c *cli.Context) bool {
	if !c.Bool("help") {
		return false
	}
	check(cli.ShowSubcommandHelp(c))
	return true
}


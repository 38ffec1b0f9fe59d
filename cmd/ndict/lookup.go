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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-ndict"
)

func lookupCommand() *cli.Command {
	return &cli.Command{
		Name:         "lookup",
		Usage:        "Look up words in a dictionary",
		ArgsUsage:    "WORD...",
		Flags:        append(dictFlags(), helpFlag()),
		HideHelp:     true,
		OnUsageError: onUsageError,
		Action:       runLookup,
	}
}

func runLookup(c *cli.Context) error {
	if showHelp(c) {
		return nil
	}
	if c.NArg() == 0 {
		return fmt.Errorf("%w: no words", ErrFlagParse)
	}

	d, err := openDict(c)
	if err != nil {
		return err
	}
	defer d.Close()

	tbl := table.New("Word", "Meaning").WithWriter(c.App.Writer)
	var missing []string
	for _, word := range c.Args().Slice() {
		meanings, err := d.Lookup(word)
		if errors.Is(err, ndict.ErrNotFound) {
			missing = append(missing, word)
			continue
		}
		if err != nil {
			//nolint:wrapcheck // errors include the blob path.
			return err
		}

		word = strings.ToLower(word)
		if len(meanings) == 0 {
			tbl.AddRow(word, "")
			continue
		}
		for i, m := range meanings {
			if i > 0 {
				word = ""
			}
			tbl.AddRow(word, m)
		}
	}
	tbl.Print()

	if len(missing) > 0 {
		return fmt.Errorf("%w: %q", ndict.ErrNotFound, missing)
	}
	return nil
}

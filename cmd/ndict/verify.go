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
	"fmt"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:         "verify",
		Usage:        "Check that a dictionary blob matches its index",
		Flags:        append(dictFlags(), helpFlag()),
		HideHelp:     true,
		OnUsageError: onUsageError,
		Action:       runVerify,
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:         "stats",
		Usage:        "Print statistics of a dictionary",
		Flags:        append(dictFlags(), helpFlag()),
		HideHelp:     true,
		OnUsageError: onUsageError,
		Action:       runStats,
	}
}

func runVerify(c *cli.Context) error {
	if showHelp(c) {
		return nil
	}

	d, err := openDict(c)
	if err != nil {
		return err
	}
	defer d.Close()

	sum, err := d.Verify()
	if err != nil {
		//nolint:wrapcheck // errors include the blob path.
		return err
	}

	fmt.Fprintf(c.App.Writer, "%s: ok, %d records, %d bytes\n", d.BlobPath(), sum.Records, sum.Size)
	return nil
}

func runStats(c *cli.Context) error {
	if showHelp(c) {
		return nil
	}

	d, err := openDict(c)
	if err != nil {
		return err
	}
	defer d.Close()

	sum, err := d.Verify()
	if err != nil {
		//nolint:wrapcheck // errors include the blob path.
		return err
	}

	tbl := table.New("Statistic", "Value").WithWriter(c.App.Writer)
	tbl.AddRow("Blob", d.BlobPath())
	tbl.AddRow("Entries", sum.Records)
	tbl.AddRow("Empty entries", sum.Empty)
	tbl.AddRow("Symbols", len(d.Table()))
	tbl.AddRow("Blob bytes", sum.Size)
	tbl.AddRow("Encoded chars", sum.Chars)
	tbl.AddRow("Bits per char", bitsPerChar(sum.Bits, sum.Chars))
	tbl.Print()
	return nil
}

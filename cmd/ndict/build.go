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
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-ndict"
	"github.com/ianlewis/go-ndict/corpus"
	"github.com/ianlewis/go-ndict/internal/config"
	"github.com/ianlewis/go-ndict/internal/logging"
	"github.com/ianlewis/go-ndict/internal/metrics"
)

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build a dictionary from a corpus",
		Description: "Reads the corpus twice, builds the code table from the character\n" +
			"frequencies, and writes the code table, blob, and index. Flags override\n" +
			"the config file and NDICT_* environment variables.",
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    "config",
				Usage:   "read build configuration from YAML `FILE`",
				Aliases: []string{"c"},
			},
			&cli.PathFlag{
				Name:  "corpus",
				Usage: "read word records from JSON Lines `FILE` (may be gzipped)",
			},
			&cli.StringFlag{
				Name:  "parse-policy",
				Usage: "`POLICY` for malformed corpus lines: abort or skip",
			},
			&cli.PathFlag{
				Name:  "vocabulary",
				Usage: "accept only words in the ranked word list `FILE`",
			},
			&cli.IntFlag{
				Name:  "vocabulary-size",
				Usage: "keep the first `N` words of the vocabulary, 0 keeps all",
			},
			&cli.BoolFlag{
				Name:  "strip-markup",
				Usage: "convert HTML markup in glosses to plain text",
			},
			&cli.BoolFlag{
				Name:  "fold-whitespace",
				Usage: "trim glosses and collapse whitespace",
			},
			&cli.PathFlag{
				Name:    "output-dir",
				Usage:   "write the dictionary files to `DIR`",
				Aliases: []string{"o"},
			},
			&cli.StringFlag{
				Name:  "table",
				Usage: "code table file `NAME`",
			},
			&cli.StringFlag{
				Name:  "blob",
				Usage: "blob file `NAME`",
			},
			&cli.StringFlag{
				Name:  "index",
				Usage: "index file `NAME`",
			},
			&cli.BoolFlag{
				Name:  "dictzip",
				Usage: "also write a dictzip copy of the blob",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log `LEVEL`: debug, info, warn, or error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log `FORMAT`: text or json",
			},
			&cli.PathFlag{
				Name:  "metrics-file",
				Usage: "write Prometheus metrics to `FILE` after the build",
			},
			helpFlag(),
		},
		HideHelp:     true,
		OnUsageError: onUsageError,
		Action:       runBuild,
	}
}

func runBuild(c *cli.Context) error {
	if showHelp(c) {
		return nil
	}
	if c.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", ErrFlagParse, c.Args().Slice())
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := logging.Setup(c.App.ErrWriter, cfg.Logging.Level, cfg.Logging.Format)

	opts, err := buildOptions(cfg, log)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	stats, buildErr := ndict.Build(ctx, opts)
	if cfg.Metrics.File != "" {
		m := metrics.New()
		if buildErr != nil {
			m.ObserveFailure(time.Since(start), time.Now())
		} else {
			m.ObserveBuild(stats, time.Since(start), time.Now())
		}
		if err := m.WriteFile(cfg.Metrics.File); err != nil {
			log.Error("writing metrics", "error", err)
		}
	}
	if buildErr != nil {
		//nolint:wrapcheck // errors are wrapped by ndict.
		return buildErr
	}

	printBuildStats(c.App.Writer, stats)
	return nil
}

// loadConfig loads the config file and environment and applies the flags
// that are set.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.Path("config"))
	if err != nil {
		//nolint:wrapcheck // errors include the config path.
		return nil, err
	}

	strs := map[string]*string{
		"corpus":       &cfg.Corpus.Path,
		"parse-policy": &cfg.Corpus.ParsePolicy,
		"vocabulary":   &cfg.Vocabulary.Path,
		"output-dir":   &cfg.Output.Dir,
		"table":        &cfg.Output.Table,
		"blob":         &cfg.Output.Blob,
		"index":        &cfg.Output.Index,
		"log-level":    &cfg.Logging.Level,
		"log-format":   &cfg.Logging.Format,
		"metrics-file": &cfg.Metrics.File,
	}
	for name, field := range strs {
		if c.IsSet(name) {
			*field = c.String(name)
		}
	}
	bools := map[string]*bool{
		"strip-markup":    &cfg.Filter.StripMarkup,
		"fold-whitespace": &cfg.Filter.FoldWhitespace,
		"dictzip":         &cfg.Output.DictZip,
	}
	for name, field := range bools {
		if c.IsSet(name) {
			*field = c.Bool(name)
		}
	}
	if c.IsSet("vocabulary-size") {
		cfg.Vocabulary.Size = c.Int("vocabulary-size")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	return cfg, nil
}

// buildOptions converts the config to build options.
func buildOptions(cfg *config.Config, log *slog.Logger) (*ndict.BuildOptions, error) {
	policy, err := cfg.Corpus.Policy()
	if err != nil {
		//nolint:wrapcheck // validated by loadConfig.
		return nil, err
	}

	opts := &ndict.BuildOptions{
		Filter: &corpus.FilterOptions{
			StripMarkup:    cfg.Filter.StripMarkup,
			FoldWhitespace: cfg.Filter.FoldWhitespace,
		},
		ParsePolicy: policy,
		TablePath:   cfg.Output.TablePath(),
		BlobPath:    cfg.Output.BlobPath(),
		IndexPath:   cfg.Output.IndexPath(),
		DictZip:     cfg.Output.DictZip,
		Logger:      log,
	}
	if cfg.Corpus.Path != "" {
		opts.Corpus = corpus.FileSource(cfg.Corpus.Path)
	}
	if cfg.Vocabulary.Path != "" {
		vocab, err := ndict.ReadVocabularyFile(cfg.Vocabulary.Path, cfg.Vocabulary.Size)
		if err != nil {
			//nolint:wrapcheck // ConfigError names the option.
			return nil, err
		}
		log.Info("read vocabulary", "path", cfg.Vocabulary.Path, "words", vocab.Len())
		opts.Vocabulary = vocab
	}
	return opts, nil
}

func printBuildStats(w io.Writer, stats *ndict.Stats) {
	tbl := table.New("Statistic", "Value").WithWriter(w)
	tbl.AddRow("Records", stats.Records)
	tbl.AddRow("Skipped lines", stats.Skipped)
	tbl.AddRow("Accepted", stats.Accepted)
	tbl.AddRow("Candidates", stats.Candidates)
	tbl.AddRow("Entries", stats.Entries)
	tbl.AddRow("Empty entries", stats.EmptyEntries)
	tbl.AddRow("Symbols", stats.Symbols)
	tbl.AddRow("Blob bytes", stats.BlobSize)
	tbl.AddRow("Bits per char", bitsPerChar(stats.Bits, stats.Chars))
	tbl.Print()
}

// bitsPerChar formats the average code length.
func bitsPerChar(bits, chars int64) string {
	if chars == 0 {
		return "-"
	}
	return fmt.Sprintf("%.3f", float64(bits)/float64(chars))
}

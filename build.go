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

package ndict

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-ndict/corpus"
	"github.com/ianlewis/go-ndict/entries"
	"github.com/ianlewis/go-ndict/huffman"
	"github.com/ianlewis/go-ndict/internal/atomicfile"
	"github.com/ianlewis/go-ndict/internal/logging"
	"github.com/ianlewis/go-ndict/store"
)

// DictZipExt is appended to the blob path for the dictzip copy of the blob.
const DictZipExt = ".dz"

// BuildOptions are options for Build.
type BuildOptions struct {
	// Corpus is the corpus of word records. It is read twice.
	Corpus corpus.Source

	// Vocabulary is the set of allowed words. A nil Vocabulary allows every
	// ASCII word.
	Vocabulary *corpus.Vocabulary

	// Filter are the gloss normalization options. If nil,
	// corpus.DefaultFilterOptions is used.
	Filter *corpus.FilterOptions

	// ParsePolicy determines how malformed corpus lines are handled.
	ParsePolicy corpus.ParsePolicy

	// TablePath is the path of the code table.
	TablePath string

	// BlobPath is the path of the blob.
	BlobPath string

	// IndexPath is the path of the index.
	IndexPath string

	// DictZip indicates that a dictzip copy of the blob is also published at
	// BlobPath + DictZipExt.
	DictZip bool

	// Logger is the logger for progress messages. If nil, the default logger
	// is used.
	Logger *slog.Logger
}

// Stats are the counts of a successful build.
type Stats struct {
	// Records is the number of corpus records read in a pass.
	Records int

	// Skipped is the number of malformed corpus lines skipped in a pass.
	Skipped int

	// Accepted is the number of records that passed the filter and have at
	// least one candidate gloss.
	Accepted int

	// Symbols is the number of characters in the code table.
	Symbols int

	// Candidates is the number of candidates collected by the selector.
	Candidates int

	// Entries is the number of words written.
	Entries int

	// EmptyEntries is the number of words written without meanings.
	EmptyEntries int

	// BlobSize is the size of the blob in bytes.
	BlobSize int64

	// Chars is the number of characters encoded.
	Chars int64

	// Bits is the number of code bits written, excluding padding.
	Bits int64
}

// validate checks the options before any pass starts.
func (o *BuildOptions) validate() error {
	if o.Corpus == nil {
		return &ConfigError{Option: "corpus", Err: errors.New("no corpus")}
	}

	r, err := o.Corpus.Open()
	if err != nil {
		return &ConfigError{Option: "corpus", Err: err}
	}
	if err := r.Close(); err != nil {
		return &ConfigError{Option: "corpus", Err: err}
	}

	paths := map[string]string{
		"table": o.TablePath,
		"blob":  o.BlobPath,
		"index": o.IndexPath,
	}
	seen := map[string]string{}
	for name, p := range paths {
		if p == "" {
			return &ConfigError{Option: name, Err: errors.New("no output path")}
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return &ConfigError{Option: name, Err: err}
		}
		if other, ok := seen[abs]; ok {
			return &ConfigError{Option: name, Err: fmt.Errorf("same path as %s: %q", other, p)}
		}
		seen[abs] = name
	}
	if o.DictZip {
		if abs, _ := filepath.Abs(o.BlobPath + DictZipExt); seen[abs] != "" {
			return &ConfigError{Option: seen[abs], Err: fmt.Errorf("same path as dictzip blob: %q", abs)}
		}
	}

	switch o.ParsePolicy {
	case corpus.ParseAbort, corpus.ParseSkip:
	default:
		return &ConfigError{Option: "parse policy", Err: fmt.Errorf("unknown policy %v", o.ParsePolicy)}
	}
	return nil
}

// builder holds the state of a single build.
type builder struct {
	opts   *BuildOptions
	filter *corpus.Filter
	log    *slog.Logger
	stats  Stats
}

// Build builds a dictionary from the corpus and publishes the code table,
// blob, and index. The context is checked between records. If the build fails
// no file is published and previously published files are left untouched.
func Build(ctx context.Context, opts *BuildOptions) (*Stats, error) {
	if opts == nil {
		opts = &BuildOptions{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	b := &builder{
		opts:   opts,
		filter: corpus.NewFilter(opts.Vocabulary, opts.Filter),
		log:    logging.WithComponent(opts.Logger, "build"),
	}

	table, err := b.buildTable(ctx)
	if err != nil {
		return nil, err
	}

	selected, err := b.selectEntries(ctx)
	if err != nil {
		return nil, err
	}

	if err := b.write(ctx, table, selected); err != nil {
		return nil, err
	}

	stats := b.stats
	return &stats, nil
}

// scan reads the corpus and calls fn for each record that passes the filter.
// It returns the number of records read, skipped, and accepted.
func (b *builder) scan(ctx context.Context, fn func(*corpus.Entry)) (int, int, int, error) {
	r, err := b.opts.Corpus.Open()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("opening corpus: %w", err)
	}
	defer r.Close()

	var records, accepted int
	s := corpus.NewScanner(r, b.opts.ParsePolicy)
	for s.Scan() {
		if err := ctx.Err(); err != nil {
			return 0, 0, 0, fmt.Errorf("reading corpus line %d: %w", s.Line(), err)
		}
		records++

		e, err := b.filter.Apply(s.Record())
		if err != nil {
			return 0, 0, 0, fmt.Errorf("corpus line %d: %w", s.Line(), err)
		}
		if e == nil {
			continue
		}
		accepted++
		fn(e)
	}
	if err := s.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("reading corpus: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("reading corpus: %w", err)
	}
	return records, s.Skipped(), accepted, nil
}

// buildTable runs the frequency pass and builds the code table.
func (b *builder) buildTable(ctx context.Context) (huffman.Table, error) {
	b.log.Info("counting characters", "corpus", fmt.Sprint(b.opts.Corpus))

	freq := huffman.Frequencies{}
	records, skipped, accepted, err := b.scan(ctx, func(e *corpus.Entry) {
		countEntry(freq, e)
	})
	if err != nil {
		return nil, err
	}
	b.stats.Records = records
	b.stats.Skipped = skipped
	b.stats.Accepted = accepted

	table := huffman.Build(freq)
	b.stats.Symbols = len(table)

	b.log.Info("built code table",
		"records", records,
		"skipped", skipped,
		"accepted", accepted,
		"symbols", len(table),
		"cost", table.Cost(freq),
	)
	if skipped > 0 {
		b.log.Warn("skipped malformed corpus lines", "skipped", skipped)
	}
	return table, nil
}

// countEntry counts the characters of the candidate glosses of e. The
// separators between non-empty glosses are counted too so that every record
// text can be encoded.
func countEntry(freq huffman.Frequencies, e *corpus.Entry) {
	n := 0
	for _, g := range e.Glosses {
		if g == "" {
			continue
		}
		freq.AddString(g)
		n++
	}
	if n > 1 {
		freq[store.MeaningSeparator[0]] += uint64(n - 1)
	}
}

// selectEntries runs the candidate pass and selects the best meanings for
// every word.
func (b *builder) selectEntries(ctx context.Context) ([]entries.Entry, error) {
	b.log.Info("collecting candidates", "corpus", fmt.Sprint(b.opts.Corpus))

	sel := entries.NewSelector()
	records, skipped, accepted, err := b.scan(ctx, func(e *corpus.Entry) {
		sel.Add(entries.Candidate{
			Word:     e.Word,
			Meanings: e.Glosses,
		})
	})
	if err != nil {
		return nil, err
	}
	if records != b.stats.Records || skipped != b.stats.Skipped || accepted != b.stats.Accepted {
		return nil, fmt.Errorf("%w: read %d records (%d skipped, %d accepted), first pass read %d (%d skipped, %d accepted)",
			ErrCorpusChanged, records, skipped, accepted, b.stats.Records, b.stats.Skipped, b.stats.Accepted)
	}
	b.stats.Candidates = sel.Len()

	selected := sel.Entries()
	b.stats.Entries = len(selected)
	b.log.Info("selected entries", "candidates", sel.Len(), "entries", len(selected))
	return selected, nil
}

// write writes all artifacts to temporary files and publishes them.
func (b *builder) write(ctx context.Context, table huffman.Table, selected []entries.Entry) (err error) {
	var files atomicfile.Set
	defer func() {
		if err != nil {
			if abortErr := files.Abort(); abortErr != nil {
				b.log.Error("removing temporary files", "error", abortErr)
			}
		}
	}()

	tableFile, err := files.Create(b.opts.TablePath)
	if err != nil {
		return err
	}
	blobFile, err := files.Create(b.opts.BlobPath)
	if err != nil {
		return err
	}
	indexFile, err := files.Create(b.opts.IndexPath)
	if err != nil {
		return err
	}

	if err := writeBuffered(tableFile, func(w io.Writer) error {
		return huffman.WriteTable(w, table)
	}); err != nil {
		return fmt.Errorf("writing code table: %w", err)
	}

	var index []*store.IndexEntry
	if err := writeBuffered(blobFile, func(w io.Writer) error {
		sw := store.NewWriter(w, table)
		for _, e := range selected {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := sw.WriteEntry(e.Word, e.Meanings); err != nil {
				return err
			}
			if len(e.Meanings) == 0 {
				b.stats.EmptyEntries++
			}
		}
		index = sw.Index()
		b.stats.BlobSize = sw.Size()
		b.stats.Chars = sw.Chars()
		b.stats.Bits = sw.Bits()
		return nil
	}); err != nil {
		return fmt.Errorf("writing blob: %w", err)
	}

	if err := writeBuffered(indexFile, func(w io.Writer) error {
		return store.WriteIndex(w, index)
	}); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}

	if b.opts.DictZip {
		if err := b.writeDictZip(&files, blobFile.File); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("publishing dictionary: %w", err)
	}
	if err := files.Commit(); err != nil {
		return fmt.Errorf("publishing dictionary: %w", err)
	}

	b.log.Info("published dictionary",
		"table", b.opts.TablePath,
		"blob", b.opts.BlobPath,
		"index", b.opts.IndexPath,
		"entries", b.stats.Entries,
		"empty", b.stats.EmptyEntries,
		"blob_size", b.stats.BlobSize,
	)
	return nil
}

// writeDictZip compresses the finished blob into a dictzip file.
func (b *builder) writeDictZip(files *atomicfile.Set, blob *os.File) error {
	path := b.opts.BlobPath + DictZipExt
	f, err := files.Create(path)
	if err != nil {
		return err
	}

	if _, err := blob.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding blob: %w", err)
	}
	z, err := dictzip.NewWriter(f.File)
	if err != nil {
		return fmt.Errorf("creating dictzip blob: %w", err)
	}
	if _, err := io.Copy(z, bufio.NewReader(blob)); err != nil {
		_ = z.Close()
		return fmt.Errorf("writing dictzip blob: %w", err)
	}
	if err := z.Close(); err != nil {
		return fmt.Errorf("writing dictzip blob: %w", err)
	}

	b.log.Debug("wrote dictzip blob", "path", path)
	return nil
}

// writeBuffered calls fn with a buffered writer for w and flushes it.
func writeBuffered(w io.Writer, fn func(io.Writer) error) error {
	bw := bufio.NewWriter(w)
	if err := fn(bw); err != nil {
		return err
	}
	//nolint:wrapcheck // errors are wrapped by the caller.
	return bw.Flush()
}

// ReadVocabularyFile reads the first size words of the ranked word list at
// path. A size of zero keeps every word.
func ReadVocabularyFile(path string, size int) (*corpus.Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Option: "vocabulary", Err: err}
	}
	defer f.Close()

	v, err := corpus.ReadVocabulary(f, size)
	if err != nil {
		return nil, &ConfigError{Option: "vocabulary", Err: err}
	}
	return v, nil
}

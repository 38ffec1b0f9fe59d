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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-ndict/huffman"
	"github.com/ianlewis/go-ndict/internal/index"
	"github.com/ianlewis/go-ndict/store"
)

// Paths are the files of a dictionary.
type Paths struct {
	// Table is the path of the code table.
	Table string

	// Blob is the path of the blob. Blobs with a ".dz" extension are read as
	// dictzip files. If Blob does not exist, Blob + ".dz" is tried.
	Blob string

	// Index is the path of the index.
	Index string
}

// Dictionary is an opened dictionary.
type Dictionary struct {
	table  huffman.Table
	dec    *huffman.Decoder
	index  *index.Index[*store.IndexEntry]
	blob   io.ReaderAt
	reader *store.Reader

	// blobSize is the size of the uncompressed blob or -1 if unknown.
	blobSize int64

	blobPath string
	closers  []io.Closer
}

// Open opens the dictionary at the given paths. The code table and index are
// loaded into memory. Records are read from the blob on demand.
func Open(paths Paths) (*Dictionary, error) {
	table, err := openTable(paths.Table)
	if err != nil {
		return nil, err
	}
	dec, err := huffman.NewDecoder(table)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", paths.Table, err)
	}

	entries, err := openIndex(paths.Index)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{
		table:    table,
		dec:      dec,
		index:    index.New(entries, strings.Compare),
		blobPath: findBlobPath(paths.Blob),
	}
	if err := d.openBlob(); err != nil {
		return nil, err
	}
	d.reader = store.NewReader(d.blob, dec)

	return d, nil
}

// Lookup returns the meanings of word. The word is matched on its lowercase
// form. It returns an error wrapping ErrNotFound if the word is not in the
// dictionary. A word without meanings returns an empty slice.
func (d *Dictionary) Lookup(word string) ([]string, error) {
	e, ok := d.index.Find(strings.ToLower(word))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, word)
	}
	meanings, err := d.reader.Meanings(e)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", d.blobPath, err)
	}
	if meanings == nil {
		meanings = []string{}
	}
	return meanings, nil
}

// Len returns the number of words in the dictionary.
func (d *Dictionary) Len() int {
	return d.index.Len()
}

// Words returns all words in ascending order.
func (d *Dictionary) Words() []string {
	var words []string
	for _, e := range d.index.All() {
		words = append(words, e.Word)
	}
	return words
}

// Table returns the code table.
func (d *Dictionary) Table() huffman.Table {
	return d.table
}

// BlobPath returns the path of the blob that was opened.
func (d *Dictionary) BlobPath() string {
	return d.blobPath
}

// Verify reads the whole blob and checks it against the index. Trailing data
// after the last record is only detected for uncompressed blobs.
func (d *Dictionary) Verify() (*store.Summary, error) {
	size := d.blobSize
	if size < 0 {
		size = 0
		if all := d.index.All(); len(all) > 0 {
			last := all[len(all)-1]
			size = last.Offset + int64(last.Size)
		}
	}
	r := io.NewSectionReader(d.blob, 0, size)
	sum, err := store.Verify(r, d.index.All(), d.dec)
	if err != nil {
		return nil, fmt.Errorf("verifying %q: %w", d.blobPath, err)
	}
	return sum, nil
}

// Close closes the blob.
func (d *Dictionary) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

func (d *Dictionary) openBlob() error {
	f, err := os.Open(d.blobPath)
	if err != nil {
		return fmt.Errorf("error opening %q: %w", d.blobPath, err)
	}
	d.closers = append(d.closers, f)

	if strings.ToLower(filepath.Ext(d.blobPath)) != DictZipExt {
		info, err := f.Stat()
		if err != nil {
			_ = d.Close()
			return fmt.Errorf("error reading %q: %w", d.blobPath, err)
		}
		d.blob = f
		d.blobSize = info.Size()
		return nil
	}

	z, err := dictzip.NewReader(f)
	if err != nil {
		_ = d.Close()
		return fmt.Errorf("error reading %q: %w", d.blobPath, err)
	}
	d.closers = append(d.closers, z)
	d.blob = z
	d.blobSize = -1
	return nil
}

// findBlobPath returns path if it exists and otherwise its dictzip
// variant if that exists.
func findBlobPath(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	for _, ext := range []string{DictZipExt, strings.ToUpper(DictZipExt)} {
		if _, err := os.Stat(path + ext); err == nil {
			return path + ext
		}
	}
	return path
}

func openTable(path string) (huffman.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", path, err)
	}
	defer f.Close()

	t, err := huffman.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return t, nil
}

func openIndex(path string) ([]*store.IndexEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", path, err)
	}
	defer f.Close()

	entries, err := store.ReadIndex(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return entries, nil
}

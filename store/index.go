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

package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// ErrInvalidIndex indicates that an index file is malformed.
var ErrInvalidIndex = errors.New("invalid index")

var indexHeader = []string{"word", "offset", "size"}

// IndexEntry is the location of a word's record in the blob.
type IndexEntry struct {
	// Word is the word.
	Word string

	// Offset is the offset of the record header in the blob.
	Offset int64

	// Size is the size of the record including the header.
	Size int
}

// String implements [fmt.Stringer].
func (e *IndexEntry) String() string {
	return e.Word
}

// WriteIndex writes the tabular encoding of the index to w.
func WriteIndex(w io.Writer, index []*IndexEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(indexHeader); err != nil {
		return fmt.Errorf("writing index header: %w", err)
	}
	for _, e := range index {
		row := []string{
			e.Word,
			strconv.FormatInt(e.Offset, 10),
			strconv.Itoa(e.Size),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing index entry for %q: %w", e.Word, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

// ReadIndex reads an index written by WriteIndex. Words must be in strictly
// ascending order and every record must be at least HeaderSize bytes.
func ReadIndex(r io.Reader) ([]*IndexEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(indexHeader)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrInvalidIndex)
		}
		return nil, fmt.Errorf("reading index header: %w", err)
	}
	if !slices.Equal(header, indexHeader) {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrInvalidIndex, header)
	}

	var index []*IndexEntry
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading index: %w", err)
		}

		line, _ := cr.FieldPos(0)
		offset, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("%w: line %d: bad offset %q", ErrInvalidIndex, line, row[1])
		}
		size, err := strconv.Atoi(row[2])
		if err != nil || size < HeaderSize || size > HeaderSize+MaxPayloadSize {
			return nil, fmt.Errorf("%w: line %d: bad size %q", ErrInvalidIndex, line, row[2])
		}
		if n := len(index); n > 0 && row[0] <= index[n-1].Word {
			return nil, fmt.Errorf("%w: line %d: %q after %q", ErrInvalidIndex, line, row[0], index[n-1].Word)
		}

		index = append(index, &IndexEntry{
			Word:   row[0],
			Offset: offset,
			Size:   size,
		})
	}
	return index, nil
}

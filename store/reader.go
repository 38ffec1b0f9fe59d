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
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ianlewis/go-ndict/huffman"
)

// ErrCorrupt indicates that a record in the blob is malformed.
var ErrCorrupt = errors.New("corrupt record")

// Record is a single record of the blob.
type Record struct {
	// Offset is the offset of the record header in the blob.
	Offset int64

	// Padding is the number of padding bits at the end of the payload.
	Padding uint8

	// Payload is the encoded text.
	Payload []byte
}

// Size returns the size of the record including the header.
func (r *Record) Size() int {
	return HeaderSize + len(r.Payload)
}

// parseRecord parses a full record from b. The payload aliases b.
func parseRecord(b []byte, offset int64) (*Record, error) {
	if len(b) < HeaderSize {
		return nil, fmt.Errorf("%w: offset %d: truncated header", ErrCorrupt, offset)
	}
	size := int(binary.BigEndian.Uint16(b))
	if len(b) != HeaderSize+size {
		return nil, fmt.Errorf("%w: offset %d: header size %d does not match record size %d", ErrCorrupt, offset, size, len(b)-HeaderSize)
	}
	return &Record{
		Offset:  offset,
		Padding: b[2],
		Payload: b[HeaderSize:],
	}, nil
}

// Reader reads records from a blob by their index entries.
type Reader struct {
	r   io.ReaderAt
	dec *huffman.Decoder
}

// NewReader returns a new Reader for the blob r whose records are decoded
// with dec.
func NewReader(r io.ReaderAt, dec *huffman.Decoder) *Reader {
	return &Reader{
		r:   r,
		dec: dec,
	}
}

// Record reads the record for the index entry e.
func (r *Reader) Record(e *IndexEntry) (*Record, error) {
	if e.Offset < 0 || e.Size < HeaderSize {
		return nil, fmt.Errorf("%w: %q: bad location %d+%d", ErrInvalidIndex, e.Word, e.Offset, e.Size)
	}

	b := make([]byte, e.Size)
	// NOTE: ReadAt may return io.EOF along with a full read of the last
	// record in the blob.
	if n, err := r.r.ReadAt(b, e.Offset); err != nil && n < len(b) {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %q: record extends past end of blob", ErrCorrupt, e.Word)
		}
		return nil, fmt.Errorf("reading record for %q: %w", e.Word, err)
	}

	rec, err := parseRecord(b, e.Offset)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", e.Word, err)
	}
	return rec, nil
}

// Text reads and decodes the text of the record for e.
func (r *Reader) Text(e *IndexEntry) (string, error) {
	rec, err := r.Record(e)
	if err != nil {
		return "", err
	}
	text, err := r.dec.Decode(rec.Payload, rec.Padding)
	if err != nil {
		return "", fmt.Errorf("decoding record for %q at offset %d: %w", e.Word, e.Offset, err)
	}
	return text, nil
}

// Meanings reads the meanings of the word for e.
func (r *Reader) Meanings(e *IndexEntry) ([]string, error) {
	text, err := r.Text(e)
	if err != nil {
		return nil, err
	}
	return SplitMeanings(text), nil
}

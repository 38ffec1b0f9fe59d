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
	"errors"
	"fmt"
	"io"

	"github.com/ianlewis/go-ndict/huffman"
)

// ErrInconsistent indicates that the index does not describe the blob.
var ErrInconsistent = errors.New("index does not match blob")

// Summary describes a verified blob.
type Summary struct {
	// Records is the number of records.
	Records int

	// Empty is the number of records without a payload.
	Empty int

	// Size is the size of the blob in bytes.
	Size int64

	// Chars is the number of decoded characters.
	Chars int64

	// Bits is the number of code bits, excluding padding.
	Bits int64
}

// Verify scans the blob from r and checks that its records are exactly the
// ones described by index, in order. Every payload is decoded with dec.
func Verify(r io.Reader, index []*IndexEntry, dec *huffman.Decoder) (*Summary, error) {
	var sum Summary

	s := NewScanner(r)
	for s.Scan() {
		rec := s.Record()
		if sum.Records >= len(index) {
			return nil, fmt.Errorf("%w: record at offset %d is not indexed", ErrInconsistent, rec.Offset)
		}

		e := index[sum.Records]
		if e.Offset != rec.Offset || e.Size != rec.Size() {
			return nil, fmt.Errorf("%w: %q: index has %d+%d, blob has %d+%d",
				ErrInconsistent, e.Word, e.Offset, e.Size, rec.Offset, rec.Size())
		}

		text, err := dec.Decode(rec.Payload, rec.Padding)
		if err != nil {
			return nil, fmt.Errorf("decoding record for %q at offset %d: %w", e.Word, e.Offset, err)
		}

		sum.Records++
		if len(rec.Payload) == 0 {
			sum.Empty++
		}
		sum.Chars += int64(len(text))
		sum.Bits += int64(len(rec.Payload))*8 - int64(rec.Padding)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning blob: %w", err)
	}

	if sum.Records < len(index) {
		return nil, fmt.Errorf("%w: %q: record missing from blob", ErrInconsistent, index[sum.Records].Word)
	}
	sum.Size = s.Offset()
	return &sum, nil
}

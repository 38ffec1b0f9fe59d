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
	"math"
	"strings"

	"github.com/ianlewis/go-ndict/huffman"
)

const (
	// HeaderSize is the size of a record header in bytes.
	HeaderSize = 3

	// MaxPayloadSize is the maximum size of a record payload in bytes.
	MaxPayloadSize = math.MaxUint16

	// MeaningSeparator separates the meanings of a word in a record.
	MeaningSeparator = "\n"
)

var (
	// ErrRecordTooLarge indicates that an encoded record does not fit in the
	// record size field.
	ErrRecordTooLarge = errors.New("record too large")

	// ErrUnsorted indicates that words were not written in ascending order.
	ErrUnsorted = errors.New("words not in ascending order")
)

// RecordTooLargeError is returned when the payload of a word exceeds
// MaxPayloadSize.
type RecordTooLargeError struct {
	// Word is the word being written.
	Word string

	// Size is the size of the encoded payload in bytes.
	Size int
}

func (e *RecordTooLargeError) Error() string {
	return fmt.Sprintf("%v: %q: payload of %d bytes exceeds %d", ErrRecordTooLarge, e.Word, e.Size, MaxPayloadSize)
}

func (e *RecordTooLargeError) Unwrap() error {
	return ErrRecordTooLarge
}

// Writer writes records to a blob and keeps the index of the written records.
type Writer struct {
	w     io.Writer
	table huffman.Table

	offset int64
	index  []*IndexEntry

	chars int64
	bits  int64
}

// NewWriter returns a Writer that encodes meanings with the code table t.
func NewWriter(w io.Writer, t huffman.Table) *Writer {
	return &Writer{
		w:     w,
		table: t,
	}
}

// WriteEntry writes the record for word. Empty meanings are ignored. Words
// must be written in strictly ascending order.
func (w *Writer) WriteEntry(word string, meanings []string) (*IndexEntry, error) {
	if n := len(w.index); n > 0 && word <= w.index[n-1].Word {
		return nil, fmt.Errorf("%w: %q after %q", ErrUnsorted, word, w.index[n-1].Word)
	}

	text := JoinMeanings(meanings)

	var payload []byte
	var padding uint8
	if text != "" {
		payload, padding = huffman.Encode(text, w.table)
	}
	if len(payload) > MaxPayloadSize {
		return nil, &RecordTooLargeError{
			Word: word,
			Size: len(payload),
		}
	}

	record := make([]byte, 0, HeaderSize+len(payload))
	//nolint:gosec // payload size is bounds checked above.
	record = binary.BigEndian.AppendUint16(record, uint16(len(payload)))
	record = append(record, padding)
	record = append(record, payload...)
	if _, err := w.w.Write(record); err != nil {
		return nil, fmt.Errorf("writing record for %q: %w", word, err)
	}

	e := &IndexEntry{
		Word:   word,
		Offset: w.offset,
		Size:   len(record),
	}
	w.index = append(w.index, e)
	w.offset += int64(len(record))
	w.chars += int64(len(text))
	w.bits += int64(len(payload))*8 - int64(padding)

	return e, nil
}

// Index returns the index of the records written so far.
func (w *Writer) Index() []*IndexEntry {
	return w.index
}

// Size returns the number of bytes written to the blob.
func (w *Writer) Size() int64 {
	return w.offset
}

// Chars returns the number of text characters encoded.
func (w *Writer) Chars() int64 {
	return w.chars
}

// Bits returns the number of code bits written, excluding padding.
func (w *Writer) Bits() int64 {
	return w.bits
}

// JoinMeanings joins the non-empty meanings into the text of a record.
func JoinMeanings(meanings []string) string {
	var nonEmpty []string
	for _, m := range meanings {
		if m != "" {
			nonEmpty = append(nonEmpty, m)
		}
	}
	return strings.Join(nonEmpty, MeaningSeparator)
}

// SplitMeanings splits the text of a record into its meanings. Empty pieces
// are dropped.
func SplitMeanings(text string) []string {
	var meanings []string
	for _, m := range strings.Split(text, MeaningSeparator) {
		if m != "" {
			meanings = append(meanings, m)
		}
	}
	return meanings
}

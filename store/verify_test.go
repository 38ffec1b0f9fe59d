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
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-ndict/huffman"
)

func TestScanner(t *testing.T) {
	t.Parallel()

	blob, _ := writeStore(t, testTable, []testEntry{
		{word: "bab", meanings: []string{"ab"}},
		{word: "cab", meanings: nil},
		{word: "dab", meanings: []string{"a", "b"}},
	})

	var records []*Record
	s := NewScanner(bytes.NewReader(blob))
	for s.Scan() {
		records = append(records, s.Record())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	expected := []*Record{
		{Offset: 0, Padding: 5, Payload: []byte{0b01000000}},
		{Offset: 4, Padding: 0, Payload: []byte{}},
		{Offset: 7, Padding: 3, Payload: []byte{0b01110000}},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Fatalf("Scan (-want, +got):\n%s", diff)
	}
	if want, got := int64(len(blob)), s.Offset(); want != got {
		t.Fatalf("Offset; want: %d, got: %d", want, got)
	}
}

func TestScanner_largeRecord(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte{0xff}, MaxPayloadSize)
	blob := append([]byte{0xff, 0xff, 0x00}, payload...)
	blob = append(blob, 0x00, 0x00, 0x00)

	s := NewScanner(bytes.NewReader(blob))
	var sizes []int
	for s.Scan() {
		sizes = append(sizes, s.Record().Size())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if diff := cmp.Diff([]int{HeaderSize + MaxPayloadSize, HeaderSize}, sizes); diff != "" {
		t.Fatalf("sizes (-want, +got):\n%s", diff)
	}
}

func TestScanner_truncated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		blob []byte
	}{
		{
			name: "header",
			blob: []byte{0x00, 0x00, 0x00, 0x00, 0x01},
		},
		{
			name: "payload",
			blob: []byte{0x00, 0x02, 0x00, 0xff},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s := NewScanner(bytes.NewReader(test.blob))
			for s.Scan() {
			}
			if err := s.Err(); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("Err: want %v, got %v", ErrCorrupt, err)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()

	entries := []testEntry{
		{word: "bab", meanings: []string{"ab"}},
		{word: "cab", meanings: nil},
		{word: "dab", meanings: []string{"a", "b"}},
	}
	blob, index := writeStore(t, testTable, entries)
	dec := mustDecoder(t, testTable)

	got, err := Verify(bytes.NewReader(blob), index, dec)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	expected := &Summary{
		Records: 3,
		Empty:   1,
		Size:    11,
		Chars:   5,
		Bits:    8,
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("Verify (-want, +got):\n%s", diff)
	}
}

func TestVerify_inconsistent(t *testing.T) {
	t.Parallel()

	entries := []testEntry{
		{word: "bab", meanings: []string{"ab"}},
		{word: "cab", meanings: nil},
		{word: "dab", meanings: []string{"a", "b"}},
	}
	blob, index := writeStore(t, testTable, entries)

	tests := []struct {
		name  string
		blob  []byte
		index []*IndexEntry
		err   error
	}{
		{
			name:  "missing entry",
			blob:  blob,
			index: index[:2],
			err:   ErrInconsistent,
		},
		{
			name:  "missing record",
			blob:  blob[:7],
			index: index,
			err:   ErrInconsistent,
		},
		{
			name: "wrong size",
			blob: blob,
			index: []*IndexEntry{
				index[0],
				{Word: "cab", Offset: 4, Size: 4},
				index[2],
			},
			err: ErrInconsistent,
		},
		{
			name:  "truncated blob",
			blob:  blob[:len(blob)-1],
			index: index,
			err:   ErrCorrupt,
		},
		{
			name:  "undecodable",
			blob:  append(bytes.Clone(blob[:7]), 0x00, 0x01, 0x07, 0b10000000),
			index: index,
			err:   huffman.ErrDecode,
		},
	}

	dec := mustDecoder(t, testTable)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := Verify(bytes.NewReader(test.blob), test.index, dec)
			if !errors.Is(err, test.err) {
				t.Fatalf("Verify: want %v, got %v", test.err, err)
			}
		})
	}
}

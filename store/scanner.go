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
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Scanner reads the records of a blob sequentially.
type Scanner struct {
	s      *bufio.Scanner
	offset int64
	rec    *Record
	err    error
}

// NewScanner returns a new Scanner reading the blob from r.
func NewScanner(r io.Reader) *Scanner {
	s := &Scanner{
		s: bufio.NewScanner(bufio.NewReader(r)),
	}
	s.s.Buffer(make([]byte, 0, 4096), HeaderSize+MaxPayloadSize)
	s.s.Split(s.splitRecord)
	return s
}

// Scan advances to the next record. It returns false at the end of the blob
// or on an error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if !s.s.Scan() {
		return false
	}

	token := s.s.Bytes()
	rec, err := parseRecord(bytes.Clone(token), s.offset)
	if err != nil {
		s.err = err
		return false
	}
	s.rec = rec
	s.offset += int64(len(token))
	return true
}

// Record returns the most recent record read by Scan.
func (s *Scanner) Record() *Record {
	return s.rec
}

// Offset returns the number of blob bytes consumed so far.
func (s *Scanner) Offset() int64 {
	return s.offset
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

func (s *Scanner) splitRecord(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if len(data) >= HeaderSize {
		tokenSize := HeaderSize + int(binary.BigEndian.Uint16(data))
		if len(data) >= tokenSize {
			return tokenSize, data[:tokenSize], nil
		}
	}

	if atEOF {
		return 0, nil, fmt.Errorf("%w: offset %d: truncated record", ErrCorrupt, s.offset)
	}

	// Request more data.
	return 0, nil, nil
}

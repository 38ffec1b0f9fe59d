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

package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxLineSize is the maximum size of a single corpus line.
const MaxLineSize = 64 << 20

// ErrParse indicates that a corpus line is not a well-formed record.
var ErrParse = errors.New("parse error")

// ParseError is returned when a corpus line cannot be parsed.
type ParseError struct {
	// Line is the 1-based line number in the corpus.
	Line int

	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: line %d: %v", ErrParse, e.Line, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// ParsePolicy determines how a Scanner handles malformed lines.
type ParsePolicy int

const (
	// ParseAbort stops the scan at the first malformed line.
	ParseAbort ParsePolicy = iota

	// ParseSkip skips malformed lines and counts them.
	ParseSkip
)

// String implements [fmt.Stringer].
func (p ParsePolicy) String() string {
	switch p {
	case ParseAbort:
		return "abort"
	case ParseSkip:
		return "skip"
	default:
		return fmt.Sprintf("ParsePolicy(%d)", int(p))
	}
}

// Sense is one sense of a word.
type Sense struct {
	Glosses []string `json:"glosses"`
}

// Record is a single corpus record.
type Record struct {
	Word   string  `json:"word"`
	Senses []Sense `json:"senses"`
}

// Scanner scans corpus records from start to end. Blank lines are skipped.
type Scanner struct {
	s       *bufio.Scanner
	policy  ParsePolicy
	line    int
	skipped int
	rec     *Record
	err     error
}

// NewScanner returns a new Scanner reading from r.
func NewScanner(r io.Reader, policy ParsePolicy) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Scanner{
		s:      s,
		policy: policy,
	}
}

// Scan advances the scanner to the next record. It returns false if the scan
// stops either by reaching the end of the corpus or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	for s.s.Scan() {
		s.line++
		b := bytes.TrimSpace(s.s.Bytes())
		if len(b) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(b, &rec); err != nil {
			if s.policy == ParseSkip {
				s.skipped++
				continue
			}
			s.err = &ParseError{
				Line: s.line,
				Err:  err,
			}
			return false
		}
		s.rec = &rec
		return true
	}

	if err := s.s.Err(); err != nil {
		s.err = fmt.Errorf("reading line %d: %w", s.line+1, err)
	}
	return false
}

// Record returns the most recent record read by Scan.
func (s *Scanner) Record() *Record {
	return s.rec
}

// Line returns the line number of the most recent record.
func (s *Scanner) Line() int {
	return s.line
}

// Skipped returns the number of malformed lines skipped so far.
func (s *Scanner) Skipped() int {
	return s.skipped
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	return s.err
}

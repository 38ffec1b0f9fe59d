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

package huffman

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var tableHeader = []string{"char", "code"}

// WriteTable writes the tabular encoding of the code table to w.
func WriteTable(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader); err != nil {
		return fmt.Errorf("writing code table header: %w", err)
	}
	for _, c := range t.Chars() {
		if err := cw.Write([]string{strconv.Itoa(int(c)), string(t[c])}); err != nil {
			return fmt.Errorf("writing code for %d: %w", c, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing code table: %w", err)
	}
	return nil
}

// ReadTable reads a code table written by WriteTable. The table is validated
// with NewDecoder.
func ReadTable(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(tableHeader)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrInvalidTable)
		}
		return nil, fmt.Errorf("reading code table header: %w", err)
	}
	if header[0] != tableHeader[0] || header[1] != tableHeader[1] {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrInvalidTable, header)
	}

	t := Table{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading code table: %w", err)
		}

		c, err := strconv.ParseUint(row[0], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: bad char %q: %w", ErrInvalidTable, row[0], err)
		}
		if _, ok := t[byte(c)]; ok {
			return nil, fmt.Errorf("%w: duplicate char %d", ErrInvalidTable, c)
		}
		t[byte(c)] = Code(row[1])
	}

	if _, err := NewDecoder(t); err != nil {
		return nil, err
	}
	return t, nil
}

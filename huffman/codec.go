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
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/icza/bitio"
)

var (
	// ErrDecode indicates that encoded data does not match the code table.
	ErrDecode = errors.New("decode error")

	// ErrInvalidTable indicates that a code table is not a valid prefix code.
	ErrInvalidTable = errors.New("invalid code table")
)

// DecodeError is returned when a bit sequence cannot be decoded.
type DecodeError struct {
	// Bit is the position of the offending bit in the payload.
	Bit int

	// Reason describes the failure.
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: bit %d: %s", ErrDecode, e.Bit, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// Encode encodes text using the code table. It returns the packed bytes and
// the number of zero bits, between 0 and 7, appended to the last byte.
//
// Characters that have no code in the table are skipped. They contribute no
// bits and are lost when the payload is decoded.
func Encode(text string, t Table) ([]byte, uint8) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for i := range len(text) {
		code := t[text[i]]
		for j := range len(code) {
			w.TryWriteBool(code[j] == '1')
		}
	}
	padding := w.TryAlign()

	// Writes to a bytes.Buffer do not fail so w.TryError is always nil.
	return buf.Bytes(), padding
}

// Decode decodes a payload produced by Encode with the same code table.
func Decode(payload []byte, padding uint8, t Table) (string, error) {
	d, err := NewDecoder(t)
	if err != nil {
		return "", err
	}
	return d.Decode(payload, padding)
}

// decodeNode is a node of the decoding tree. Inner nodes have at least one
// child. Leaves have none.
type decodeNode struct {
	children [2]*decodeNode
	leaf     bool
	char     byte
}

// Decoder decodes payloads for a single code table. A Decoder can be reused
// for any number of payloads.
type Decoder struct {
	root *decodeNode
}

// NewDecoder builds the decoding tree for the code table. It returns an error
// wrapping ErrInvalidTable if the table is not a prefix code.
func NewDecoder(t Table) (*Decoder, error) {
	root := &decodeNode{}
	for _, c := range t.Chars() {
		code := t[c]
		if code == "" {
			return nil, fmt.Errorf("%w: empty code for %d", ErrInvalidTable, c)
		}

		n := root
		for i := range len(code) {
			var bit int
			switch code[i] {
			case '0':
			case '1':
				bit = 1
			default:
				return nil, fmt.Errorf("%w: bad code %q for %d", ErrInvalidTable, code, c)
			}
			if n.leaf {
				return nil, fmt.Errorf("%w: code %q for %d has a prefix in the table", ErrInvalidTable, code, c)
			}
			if n.children[bit] == nil {
				n.children[bit] = &decodeNode{}
			}
			n = n.children[bit]
		}

		if n.leaf || n.children[0] != nil || n.children[1] != nil {
			return nil, fmt.Errorf("%w: code %q for %d is a prefix of another code", ErrInvalidTable, code, c)
		}
		n.leaf = true
		n.char = c
	}

	return &Decoder{root: root}, nil
}

// Decode decodes the payload. The last padding bits of the payload are
// ignored.
func (d *Decoder) Decode(payload []byte, padding uint8) (string, error) {
	if padding > 7 {
		return "", &DecodeError{Bit: 0, Reason: fmt.Sprintf("invalid padding %d", padding)}
	}
	if len(payload) == 0 {
		if padding != 0 {
			return "", &DecodeError{Bit: 0, Reason: fmt.Sprintf("padding %d on empty payload", padding)}
		}
		return "", nil
	}

	nbits := len(payload)*8 - int(padding)
	r := bitio.NewReader(bytes.NewReader(payload))

	var sb strings.Builder
	n := d.root
	for i := range nbits {
		one, err := r.ReadBool()
		if err != nil {
			return "", fmt.Errorf("reading bit %d: %w", i, err)
		}
		var bit int
		if one {
			bit = 1
		}

		next := n.children[bit]
		if next == nil {
			return "", &DecodeError{Bit: i, Reason: "no matching code"}
		}
		if next.leaf {
			sb.WriteByte(next.char)
			n = d.root
			continue
		}
		n = next
	}

	if n != d.root {
		return "", &DecodeError{Bit: nbits, Reason: "incomplete code at end of payload"}
	}
	return sb.String(), nil
}

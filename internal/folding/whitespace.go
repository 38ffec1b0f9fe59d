// Copyright 2025 Ian Lewis
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

package folding

import (
	"golang.org/x/text/transform"
)

// WhitespaceFolder performs whitespace folding on ASCII input. It removes
// whitespace and control characters from the beginning and end of the input
// and replaces every internal span of them with a single ASCII space.
//
// Newlines never survive folding, which keeps folded text safe to join with
// newline separators.
type WhitespaceFolder struct {
	// notStart is true after encountering the first visible character.
	notStart bool

	// wsSpan is true if the transformer is currently handling a whitespace span.
	wsSpan bool
}

// isSpace reports whether c is ASCII whitespace or a control character.
func isSpace(c byte) bool {
	return c <= ' ' || c == 0x7f
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, _ bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c := src[nSrc]
		if isSpace(c) {
			nSrc++
			if w.notStart {
				w.wsSpan = true
			}
			continue
		}

		if w.wsSpan {
			// Trailing whitespace is never emitted because a span is only
			// written out when a visible character follows it.
			if nDst+2 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = ' '
			nDst++
			w.wsSpan = false
		}

		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		nSrc++
		w.notStart = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{}
}

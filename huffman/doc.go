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

// Package huffman implements a static Huffman code over single byte
// characters.
//
// A code table is built once from the character frequencies of a whole
// corpus and is immutable afterwards. Text is encoded into a bit packed byte
// sequence, most significant bit first, padded with zero bits up to the next
// byte boundary. The number of padding bits must be stored alongside the
// payload so that the exact bit length can be recovered when decoding.
//
// The code table has a tabular encoding with one row per character:
//
//	char,code
//	32,110
//	97,0100
//
// where char is the character code point and code is the code word written as
// a string of '0' and '1' characters. Rows are sorted by code point.
package huffman

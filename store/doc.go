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

// Package store implements the compressed record blob and its index.
//
// The blob is a sequence of records with no delimiter between them:
//
//	record  := header payload
//	header  := size:uint16 padding:uint8
//	payload := size bytes
//
// The size is big-endian. The payload is the meanings of a word joined with
// '\n' and encoded with a huffman code table. The padding is the number of
// zero bits appended to the last payload byte. A word without meanings is
// stored as a 3 byte header with a size and padding of zero.
//
// Records are written in ascending word order and are addressed with the
// index. The index has a tabular encoding with one row per word:
//
//	word,offset,size
//	cat,0,19
//	run,19,23
//
// where offset is the position of the record header in the blob and size is
// the full size of the record including the header. The blob size is the sum
// of all record sizes.
package store

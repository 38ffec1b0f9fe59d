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

// Package ndict builds and reads compact dictionaries compressed with a
// static Huffman code.
//
// A dictionary is made of three files:
//  1. A code table that maps each character to its code word.
//  2. A blob holding one compressed record per word. The blob can also be
//     published as a dictzip file for use with standard tools.
//  3. An index mapping each word to the offset and size of its record in the
//     blob.
//
// Build reads a corpus of word records twice. The first pass counts the
// characters of every candidate gloss and builds the code table. The second
// pass collects candidate glosses per word and selects the best set for each
// word. The selected entries are then written in word order. All three files
// are published together only after they were fully written.
//
// Open loads a dictionary for lookups.
package ndict

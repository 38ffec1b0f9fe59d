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

// Package corpus implements reading and filtering of a lexical corpus.
//
// The corpus is a text file with one JSON record per line. Each record has a
// headword and a list of senses, each of which has a list of glosses:
//
//	{"word": "run", "senses": [{"glosses": ["to move fast"]}, {"glosses": ["to manage"]}]}
//
// Other fields are ignored. A corpus file whose name ends in ".gz" is read
// through a gzip decompressor.
//
// Records are filtered against a ranked vocabulary and reduced to at most two
// candidate glosses by a Filter. The same Filter must be used for every pass
// over a corpus so that all passes see the same text.
package corpus

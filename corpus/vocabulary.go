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
	"fmt"
	"io"
	"strings"
)

// DefaultVocabularySize is the default number of ranked words kept in a
// vocabulary.
const DefaultVocabularySize = 500_000

// Vocabulary is the set of allowed headwords. Words are matched on their
// lowercase form.
//
// A nil *Vocabulary allows every word.
type Vocabulary struct {
	words map[string]struct{}
}

// NewVocabulary returns a vocabulary containing the given words.
func NewVocabulary(words []string) *Vocabulary {
	v := &Vocabulary{
		words: make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		v.words[strings.ToLower(w)] = struct{}{}
	}
	return v
}

// ReadVocabulary reads a ranked word list with one word per line, most
// frequent first. Only the first size words are kept. A size of zero or less
// keeps every word. Blank lines are ignored.
func ReadVocabulary(r io.Reader, size int) (*Vocabulary, error) {
	var words []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if size > 0 && len(words) >= size {
			break
		}
		w := strings.TrimSpace(s.Text())
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading vocabulary: %w", err)
	}
	return NewVocabulary(words), nil
}

// Contains reports whether the lowercase form of word is in the vocabulary.
func (v *Vocabulary) Contains(word string) bool {
	if v == nil {
		return true
	}
	_, ok := v.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct words in the vocabulary.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.words)
}

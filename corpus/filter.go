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
	"fmt"
	"strings"
	"unicode"

	"github.com/k3a/html2text"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ianlewis/go-ndict/internal/folding"
)

// MaxSenses is the maximum number of senses considered per record.
const MaxSenses = 2

// FilterOptions are options for normalizing glosses.
type FilterOptions struct {
	// StripMarkup converts HTML markup and entities in glosses to plain text.
	StripMarkup bool

	// FoldWhitespace trims glosses and replaces internal whitespace spans with
	// a single space. Line breaks are replaced with spaces even when
	// FoldWhitespace is false.
	FoldWhitespace bool
}

// DefaultFilterOptions is the default options for a Filter.
var DefaultFilterOptions = &FilterOptions{
	FoldWhitespace: true,
}

// Entry is a record that passed the filter.
type Entry struct {
	// Word is the lowercase headword.
	Word string

	// Glosses are the candidate glosses of the record. It holds at most
	// MaxSenses glosses, some of which may be empty.
	Glosses []string
}

// Filter selects records by headword and extracts their candidate glosses.
// A Filter is not safe for concurrent use.
type Filter struct {
	vocab       *Vocabulary
	stripMarkup bool
	t           transform.Transformer
}

// NewFilter returns a new Filter accepting the words in vocab. A nil vocab
// accepts every ASCII word.
func NewFilter(vocab *Vocabulary, opts *FilterOptions) *Filter {
	if opts == nil {
		opts = DefaultFilterOptions
	}

	// Decompose characters so that accented letters keep their ASCII base
	// letter, then drop everything outside ASCII. Line breaks are replaced
	// since the store uses '\n' to separate meanings.
	chain := []transform.Transformer{
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool {
			return r > unicode.MaxASCII
		})),
		runes.Map(func(r rune) rune {
			if r == '\n' || r == '\r' {
				return ' '
			}
			return r
		}),
	}
	if opts.FoldWhitespace {
		chain = append(chain, &folding.WhitespaceFolder{})
	}

	return &Filter{
		vocab:       vocab,
		stripMarkup: opts.StripMarkup,
		t:           transform.Chain(chain...),
	}
}

// Word returns the lowercase headword of rec and whether the record passes
// the filter. A record passes if its headword is non-empty, ASCII, and in
// the vocabulary.
func (f *Filter) Word(rec *Record) (string, bool) {
	if rec == nil || rec.Word == "" || !isASCII(rec.Word) {
		return "", false
	}
	if !f.vocab.Contains(rec.Word) {
		return "", false
	}
	return strings.ToLower(rec.Word), true
}

// CandidateGlosses returns the first gloss of each of the first MaxSenses
// senses of rec. Senses without glosses are skipped. Glosses are normalized
// to ASCII and may be empty.
func (f *Filter) CandidateGlosses(rec *Record) ([]string, error) {
	var glosses []string
	for i, sense := range rec.Senses {
		if i >= MaxSenses {
			break
		}
		if len(sense.Glosses) == 0 {
			continue
		}
		g, err := f.normalize(sense.Glosses[0])
		if err != nil {
			return nil, fmt.Errorf("normalizing gloss of %q: %w", rec.Word, err)
		}
		glosses = append(glosses, g)
	}
	return glosses, nil
}

// Apply filters rec and extracts its candidate glosses. It returns nil if the
// record does not pass the filter or has no candidate glosses.
func (f *Filter) Apply(rec *Record) (*Entry, error) {
	word, ok := f.Word(rec)
	if !ok {
		return nil, nil
	}
	glosses, err := f.CandidateGlosses(rec)
	if err != nil {
		return nil, err
	}
	if len(glosses) == 0 {
		return nil, nil
	}
	return &Entry{
		Word:    word,
		Glosses: glosses,
	}, nil
}

func (f *Filter) normalize(gloss string) (string, error) {
	if f.stripMarkup {
		gloss = html2text.HTML2Text(gloss)
	}
	s, _, err := transform.String(f.t, gloss)
	if err != nil {
		return "", fmt.Errorf("transforming gloss: %w", err)
	}
	return s, nil
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

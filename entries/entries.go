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

// Package entries selects the single best set of meanings for each word.
//
// Every record of a word produces a Candidate. Candidates are collected by a
// Selector and reduced once the whole corpus has been read. The reduction
// sorts candidates by word and then by meanings, and keeps the candidate with
// the highest score for each word. When scores are equal the candidate that
// sorts first is kept, so the result does not depend on corpus order.
package entries

import (
	"cmp"
	"slices"
)

// Candidate is a possible set of meanings for a word. Meanings may contain
// empty placeholders.
type Candidate struct {
	Word     string
	Meanings []string
}

// Scored is a set of non-empty meanings and its score.
type Scored struct {
	Meanings []string
	Score    int
}

// Score drops the empty meanings and scores the rest. The score is the number
// of meanings multiplied by their total length.
func Score(meanings []string) Scored {
	var s Scored
	total := 0
	for _, m := range meanings {
		if m == "" {
			continue
		}
		s.Meanings = append(s.Meanings, m)
		total += len(m)
	}
	s.Score = len(s.Meanings) * total
	return s
}

// Better reports whether next should replace current. It is true only if
// next has a strictly greater score.
func Better(current, next Scored) bool {
	return next.Score > current.Score
}

// Entry is the selected meanings of a word.
type Entry struct {
	Word string
	Scored
}

// Selector collects candidates and selects the best one per word.
type Selector struct {
	candidates []Candidate
}

// NewSelector returns a new empty Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Add adds a candidate.
func (s *Selector) Add(c Candidate) {
	s.candidates = append(s.candidates, c)
}

// Len returns the number of candidates added.
func (s *Selector) Len() int {
	return len(s.candidates)
}

// Entries returns the best entry of every word sorted by word.
func (s *Selector) Entries() []Entry {
	sorted := slices.Clone(s.candidates)
	slices.SortStableFunc(sorted, compareCandidates)

	var result []Entry
	for _, c := range sorted {
		scored := Score(c.Meanings)
		if n := len(result); n > 0 && result[n-1].Word == c.Word {
			if Better(result[n-1].Scored, scored) {
				result[n-1].Scored = scored
			}
			continue
		}
		result = append(result, Entry{
			Word:   c.Word,
			Scored: scored,
		})
	}
	return result
}

func compareCandidates(a, b Candidate) int {
	return cmp.Or(
		cmp.Compare(a.Word, b.Word),
		slices.Compare(a.Meanings, b.Meanings),
	)
}

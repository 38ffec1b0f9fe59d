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

package entries

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		meanings []string
		expected Scored
	}{
		{
			name:     "nil",
			meanings: nil,
			expected: Scored{},
		},
		{
			name:     "empty placeholders",
			meanings: []string{"", ""},
			expected: Scored{},
		},
		{
			name:     "one meaning",
			meanings: []string{"go quickly"},
			expected: Scored{Meanings: []string{"go quickly"}, Score: 10},
		},
		{
			name:     "two meanings",
			meanings: []string{"to move fast", "to manage"},
			expected: Scored{Meanings: []string{"to move fast", "to manage"}, Score: 42},
		},
		{
			name:     "placeholder dropped",
			meanings: []string{"", "two"},
			expected: Scored{Meanings: []string{"two"}, Score: 3},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Score(test.meanings)); diff != "" {
				t.Fatalf("Score (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestBetter(t *testing.T) {
	t.Parallel()

	low := Scored{Meanings: []string{"a"}, Score: 1}
	high := Scored{Meanings: []string{"abc"}, Score: 3}
	same := Scored{Meanings: []string{"xyz"}, Score: 3}

	if !Better(low, high) {
		t.Errorf("Better(low, high) = false")
	}
	if Better(high, low) {
		t.Errorf("Better(high, low) = true")
	}
	if Better(high, same) {
		t.Errorf("Better(high, same) = true")
	}
}

func TestSelector_Entries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		candidates []Candidate
		expected   []Entry
	}{
		{
			name:       "empty",
			candidates: nil,
			expected:   nil,
		},
		{
			name: "higher score kept",
			candidates: []Candidate{
				{Word: "run", Meanings: []string{"to move fast", "to manage"}},
				{Word: "run", Meanings: []string{"go quickly"}},
			},
			expected: []Entry{
				{
					Word: "run",
					Scored: Scored{
						Meanings: []string{"to move fast", "to manage"},
						Score:    42,
					},
				},
			},
		},
		{
			name: "higher score found later",
			candidates: []Candidate{
				{Word: "run", Meanings: []string{"a"}},
				{Word: "run", Meanings: []string{"zz", "zz"}},
			},
			expected: []Entry{
				{
					Word:   "run",
					Scored: Scored{Meanings: []string{"zz", "zz"}, Score: 8},
				},
			},
		},
		{
			name: "equal score first in sorted order",
			candidates: []Candidate{
				{Word: "cat", Meanings: []string{"xyz"}},
				{Word: "cat", Meanings: []string{"abc"}},
				{Word: "cat", Meanings: []string{"mno"}},
			},
			expected: []Entry{
				{
					Word:   "cat",
					Scored: Scored{Meanings: []string{"abc"}, Score: 3},
				},
			},
		},
		{
			name: "empty meanings",
			candidates: []Candidate{
				{Word: "dog", Meanings: []string{""}},
			},
			expected: []Entry{
				{Word: "dog"},
			},
		},
		{
			name: "empty meanings replaced",
			candidates: []Candidate{
				{Word: "dog", Meanings: []string{"", "a pet"}},
				{Word: "dog", Meanings: []string{"", ""}},
			},
			expected: []Entry{
				{
					Word:   "dog",
					Scored: Scored{Meanings: []string{"a pet"}, Score: 5},
				},
			},
		},
		{
			name: "sorted by word",
			candidates: []Candidate{
				{Word: "run", Meanings: []string{"to move fast"}},
				{Word: "cat", Meanings: []string{"a pet"}},
				{Word: "emu", Meanings: []string{"a bird"}},
				{Word: "cat", Meanings: []string{"a small mammal"}},
			},
			expected: []Entry{
				{
					Word:   "cat",
					Scored: Scored{Meanings: []string{"a small mammal"}, Score: 14},
				},
				{
					Word:   "emu",
					Scored: Scored{Meanings: []string{"a bird"}, Score: 6},
				},
				{
					Word:   "run",
					Scored: Scored{Meanings: []string{"to move fast"}, Score: 12},
				},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s := NewSelector()
			for _, c := range test.candidates {
				s.Add(c)
			}
			if want, got := len(test.candidates), s.Len(); want != got {
				t.Errorf("Len; want: %d, got: %d", want, got)
			}

			if diff := cmp.Diff(test.expected, s.Entries()); diff != "" {
				t.Fatalf("Entries (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestSelector_Entries_order tests that the result does not depend on the
// order candidates are added in.
func TestSelector_Entries_order(t *testing.T) {
	t.Parallel()

	candidates := []Candidate{
		{Word: "cat", Meanings: []string{"xyz"}},
		{Word: "cat", Meanings: []string{"abc"}},
		{Word: "run", Meanings: []string{"go quickly"}},
		{Word: "run", Meanings: []string{"to move fast", "to manage"}},
		{Word: "cat", Meanings: []string{"", "abc"}},
	}

	forward := NewSelector()
	for _, c := range candidates {
		forward.Add(c)
	}
	backward := NewSelector()
	for i := len(candidates) - 1; i >= 0; i-- {
		backward.Add(candidates[i])
	}

	if diff := cmp.Diff(forward.Entries(), backward.Entries()); diff != "" {
		t.Fatalf("Entries (-forward, +backward):\n%s", diff)
	}
}

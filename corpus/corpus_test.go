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

package corpus_test

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-ndict/corpus"
	"github.com/ianlewis/go-ndict/internal/testutil"
)

// scanAll reads all records from r.
func scanAll(t *testing.T, r io.Reader, policy corpus.ParsePolicy) ([]*corpus.Record, *corpus.Scanner) {
	t.Helper()

	var records []*corpus.Record
	s := corpus.NewScanner(r, policy)
	for s.Scan() {
		records = append(records, s.Record())
	}
	return records, s
}

// TestScanner tests Scanner.
func TestScanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		policy   corpus.ParsePolicy
		expected []*corpus.Record
		skipped  int
		errLine  int
	}{
		{
			name:     "empty",
			data:     "",
			expected: nil,
		},
		{
			name: "records",
			data: `{"word": "run", "pos": "verb", "senses": [{"glosses": ["to move fast"]}, {"glosses": ["to manage"]}]}
{"word": "cat", "senses": []}
`,
			expected: []*corpus.Record{
				testutil.Rec("run", []string{"to move fast"}, []string{"to manage"}),
				{Word: "cat", Senses: []corpus.Sense{}},
			},
		},
		{
			name: "blank lines",
			data: "\n{\"word\": \"run\"}\n   \n{\"word\": \"cat\"}",
			expected: []*corpus.Record{
				{Word: "run"},
				{Word: "cat"},
			},
		},
		{
			name: "null record",
			data: "null\n",
			expected: []*corpus.Record{
				{},
			},
		},
		{
			name: "malformed abort",
			data: "{\"word\": \"run\"}\n\n{\"word\": \n{\"word\": \"cat\"}\n",
			expected: []*corpus.Record{
				{Word: "run"},
			},
			errLine: 3,
		},
		{
			name:   "malformed skip",
			data:   "{\"word\": \"run\"}\n{\"word\": \n[1, 2]\n{\"word\": \"cat\"}\n",
			policy: corpus.ParseSkip,
			expected: []*corpus.Record{
				{Word: "run"},
				{Word: "cat"},
			},
			skipped: 2,
		},
		{
			name:    "wrong type",
			data:    "{\"word\": 1}\n",
			errLine: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			records, s := scanAll(t, strings.NewReader(test.data), test.policy)
			if diff := cmp.Diff(test.expected, records); diff != "" {
				t.Errorf("Scan (-want, +got):\n%s", diff)
			}
			if want, got := test.skipped, s.Skipped(); want != got {
				t.Errorf("Skipped; want: %d, got: %d", want, got)
			}

			err := s.Err()
			if test.errLine == 0 {
				if err != nil {
					t.Fatalf("Err: %v", err)
				}
				return
			}
			if !errors.Is(err, corpus.ErrParse) {
				t.Fatalf("Err: want %v, got %v", corpus.ErrParse, err)
			}
			var parseErr *corpus.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Err: want *ParseError, got %T", err)
			}
			if want, got := test.errLine, parseErr.Line; want != got {
				t.Fatalf("ParseError.Line; want: %d, got: %d", want, got)
			}
		})
	}
}

// TestFileSource tests FileSource.Open.
func TestFileSource(t *testing.T) {
	t.Parallel()

	records := []*corpus.Record{
		testutil.Rec("run", []string{"to move fast"}),
		testutil.Rec("cat", []string{"a small mammal"}),
	}

	for _, gz := range []bool{false, true} {
		path := testutil.MakeTempCorpus(t, records, &testutil.MakeCorpusOptions{Gzip: gz})
		src := corpus.FileSource(path)

		// The source can be read more than once.
		for range 2 {
			r, err := src.Open()
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			got, s := scanAll(t, r, corpus.ParseAbort)
			if err := s.Err(); err != nil {
				t.Fatalf("Err: %v", err)
			}
			if err := r.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			if diff := cmp.Diff(records, got); diff != "" {
				t.Fatalf("Scan gzip=%v (-want, +got):\n%s", gz, diff)
			}
		}
	}
}

// TestFileSource_missing tests opening a missing corpus.
func TestFileSource_missing(t *testing.T) {
	t.Parallel()

	_, err := corpus.FileSource("/does/not/exist.jsonl").Open()
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Open: want %v, got %v", os.ErrNotExist, err)
	}
}

// TestReadVocabulary tests ReadVocabulary.
func TestReadVocabulary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		size     int
		contains []string
		missing  []string
		len      int
	}{
		{
			name:     "all",
			data:     "the\nof\nRun\n\ncat\n",
			size:     0,
			contains: []string{"the", "of", "run", "RUN", "cat"},
			len:      4,
		},
		{
			name:     "limited",
			data:     "the\n\nof\nrun\ncat\n",
			size:     2,
			contains: []string{"the", "of"},
			missing:  []string{"run", "cat"},
			len:      2,
		},
		{
			name:     "whitespace",
			data:     "  the \r\nof\t\n",
			contains: []string{"the", "of"},
			len:      2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			v, err := corpus.ReadVocabulary(strings.NewReader(test.data), test.size)
			if err != nil {
				t.Fatalf("ReadVocabulary: %v", err)
			}
			for _, w := range test.contains {
				if !v.Contains(w) {
					t.Errorf("Contains(%q) = false", w)
				}
			}
			for _, w := range test.missing {
				if v.Contains(w) {
					t.Errorf("Contains(%q) = true", w)
				}
			}
			if want, got := test.len, v.Len(); want != got {
				t.Errorf("Len; want: %d, got: %d", want, got)
			}
		})
	}
}

// TestVocabulary_nil tests that a nil vocabulary allows every word.
func TestVocabulary_nil(t *testing.T) {
	t.Parallel()

	var v *corpus.Vocabulary
	if !v.Contains("anything") {
		t.Fatal("Contains = false")
	}
}

// TestFilter_Apply tests Filter.Apply.
func TestFilter_Apply(t *testing.T) {
	t.Parallel()

	vocab := corpus.NewVocabulary([]string{"run", "cat", "cafe", "dog", "emu"})

	tests := []struct {
		name     string
		rec      *corpus.Record
		opts     *corpus.FilterOptions
		expected *corpus.Entry
	}{
		{
			name: "two senses",
			rec:  testutil.Rec("run", []string{"to move fast", "to jog"}, []string{"to manage"}),
			expected: &corpus.Entry{
				Word:    "run",
				Glosses: []string{"to move fast", "to manage"},
			},
		},
		{
			name: "first two senses only",
			rec:  testutil.Rec("run", []string{"one"}, []string{"two"}, []string{"three"}),
			expected: &corpus.Entry{
				Word:    "run",
				Glosses: []string{"one", "two"},
			},
		},
		{
			name: "sense without glosses",
			rec:  testutil.Rec("run", nil, []string{"two"}, []string{"three"}),
			expected: &corpus.Entry{
				Word:    "run",
				Glosses: []string{"two"},
			},
		},
		{
			name: "empty gloss kept",
			rec:  testutil.Rec("run", []string{""}, []string{"two"}),
			expected: &corpus.Entry{
				Word:    "run",
				Glosses: []string{"", "two"},
			},
		},
		{
			name: "uppercase headword",
			rec:  testutil.Rec("Cat", []string{"a small mammal"}),
			expected: &corpus.Entry{
				Word:    "cat",
				Glosses: []string{"a small mammal"},
			},
		},
		{
			name:     "not in vocabulary",
			rec:      testutil.Rec("horse", []string{"a large mammal"}),
			expected: nil,
		},
		{
			name:     "non-ascii headword",
			rec:      testutil.Rec("café", []string{"a coffee shop"}),
			expected: nil,
		},
		{
			name:     "empty headword",
			rec:      testutil.Rec("", []string{"nothing"}),
			expected: nil,
		},
		{
			name:     "no senses",
			rec:      testutil.Rec("dog"),
			expected: nil,
		},
		{
			name:     "no glosses in first two senses",
			rec:      testutil.Rec("dog", nil, []string{}, []string{"three"}),
			expected: nil,
		},
		{
			name: "non-ascii gloss",
			rec:  testutil.Rec("cafe", []string{"a café serving ﬁne coffee — or tea"}),
			expected: &corpus.Entry{
				Word:    "cafe",
				Glosses: []string{"a cafe serving fine coffee or tea"},
			},
		},
		{
			name: "whitespace folded",
			rec:  testutil.Rec("emu", []string{"  a large\n flightless\tbird "}),
			expected: &corpus.Entry{
				Word:    "emu",
				Glosses: []string{"a large flightless bird"},
			},
		},
		{
			name: "whitespace kept",
			rec:  testutil.Rec("emu", []string{" a  large\tbird"}),
			opts: &corpus.FilterOptions{},
			expected: &corpus.Entry{
				Word:    "emu",
				Glosses: []string{" a  large\tbird"},
			},
		},
		{
			name: "line breaks replaced without folding",
			rec:  testutil.Rec("emu", []string{"a large\nbird\r\n"}, []string{"\n"}),
			opts: &corpus.FilterOptions{},
			expected: &corpus.Entry{
				Word:    "emu",
				Glosses: []string{"a large bird  ", " "},
			},
		},
		{
			name: "markup stripped",
			rec:  testutil.Rec("emu", []string{"a <i>large</i> bird"}),
			opts: &corpus.FilterOptions{StripMarkup: true, FoldWhitespace: true},
			expected: &corpus.Entry{
				Word:    "emu",
				Glosses: []string{"a large bird"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			f := corpus.NewFilter(vocab, test.opts)
			got, err := f.Apply(test.rec)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Apply (-want, +got):\n%s", diff)
			}
		})
	}
}

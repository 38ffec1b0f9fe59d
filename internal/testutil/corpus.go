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

package testutil

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-ndict/corpus"
)

// MakeCorpusOptions are options for MakeTempCorpus.
type MakeCorpusOptions struct {
	// Gzip indicates that the corpus file should be compressed with gzip.
	Gzip bool
}

// Rec is a shorthand for a corpus record where each argument after the word
// is the gloss list of one sense.
func Rec(word string, senses ...[]string) *corpus.Record {
	rec := &corpus.Record{Word: word}
	for _, glosses := range senses {
		rec.Senses = append(rec.Senses, corpus.Sense{Glosses: glosses})
	}
	return rec
}

// MakeCorpus creates corpus file contents with one JSON record per line.
func MakeCorpus(t *testing.T, records []*corpus.Record) []byte {
	t.Helper()

	var b []byte
	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		b = append(b, line...)
		b = append(b, '\n')
	}
	return b
}

// MakeTempCorpus writes a corpus file into a temporary directory and returns
// its path.
func MakeTempCorpus(t *testing.T, records []*corpus.Record, opts *MakeCorpusOptions) string {
	t.Helper()
	if opts == nil {
		opts = &MakeCorpusOptions{}
	}

	name := "corpus.jsonl"
	if opts.Gzip {
		name += ".gz"
	}
	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	data := MakeCorpus(t, records)
	if opts.Gzip {
		z := gzip.NewWriter(f)
		if _, err := z.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	} else if _, err := f.Write(data); err != nil {
		t.Fatal(err)
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// WriteFile writes data to name in a temporary directory and returns the
// path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

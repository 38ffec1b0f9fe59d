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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-ndict/corpus"
	"github.com/ianlewis/go-ndict/internal/testutil"
)

var testRecords = []*corpus.Record{
	testutil.Rec("run", []string{"to move fast"}, []string{"to manage"}),
	testutil.Rec("cat", []string{"a <b>small</b> mammal"}),
	testutil.Rec("dog", []string{""}),
}

// runApp runs the app and returns the exit code and output.
func runApp(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(append([]string{"ndict"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// buildDict builds the test corpus into a new directory and returns it.
func buildDict(t *testing.T, args ...string) string {
	t.Helper()

	dir := t.TempDir()
	path := testutil.MakeTempCorpus(t, testRecords, &testutil.MakeCorpusOptions{Gzip: true})
	args = append([]string{"build", "--corpus", path, "--output-dir", dir, "--log-level", "error"}, args...)
	code, stdout, stderr := runApp(t, args...)
	if code != ExitCodeSuccess {
		t.Fatalf("build: exit code %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Entries") {
		t.Fatalf("build: unexpected output: %q", stdout)
	}
	return dir
}

func TestRun_version(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runApp(t, "--version")
	if want, got := ExitCodeSuccess, code; want != got {
		t.Fatalf("exit code; want: %d, got: %d", want, got)
	}
	if !strings.HasPrefix(stdout, "ndict ") {
		t.Fatalf("unexpected output: %q", stdout)
	}
}

func TestRun_flagParseError(t *testing.T) {
	t.Parallel()

	tests := [][]string{
		{"--unknown"},
		{"build", "--unknown"},
		{"build", "--parse-policy", "ignore"},
		{"build", "extra"},
		{"lookup"},
	}

	for _, args := range tests {
		code, _, stderr := runApp(t, args...)
		if want, got := ExitCodeFlagParseError, code; want != got {
			t.Errorf("%q: exit code; want: %d, got: %d: %s", args, want, got, stderr)
		}
	}
}

func TestRun_build(t *testing.T) {
	t.Parallel()

	dir := buildDict(t, "--strip-markup", "--dictzip")
	for _, name := range []string{"codes.csv", "dictionary.bin", "dictionary.bin.dz", "index.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Stat: %v", err)
		}
	}

	code, stdout, stderr := runApp(t, "lookup", "--dir", dir, "RUN", "cat", "dog")
	if want, got := ExitCodeSuccess, code; want != got {
		t.Fatalf("lookup: exit code; want: %d, got: %d: %s", want, got, stderr)
	}
	for _, s := range []string{"run", "to move fast", "to manage", "a small mammal", "dog"} {
		if !strings.Contains(stdout, s) {
			t.Errorf("lookup: output does not contain %q:\n%s", s, stdout)
		}
	}

	code, _, stderr = runApp(t, "lookup", "--dir", dir, "horse")
	if want, got := ExitCodeUnknownError, code; want != got {
		t.Fatalf("lookup: exit code; want: %d, got: %d", want, got)
	}
	if !strings.Contains(stderr, "word not found") {
		t.Errorf("lookup: unexpected error: %q", stderr)
	}

	code, stdout, stderr = runApp(t, "verify", "--dir", dir)
	if want, got := ExitCodeSuccess, code; want != got {
		t.Fatalf("verify: exit code; want: %d, got: %d: %s", want, got, stderr)
	}
	if !strings.Contains(stdout, "ok, 3 records") {
		t.Errorf("verify: unexpected output: %q", stdout)
	}

	code, stdout, stderr = runApp(t, "stats", "--dir", dir)
	if want, got := ExitCodeSuccess, code; want != got {
		t.Fatalf("stats: exit code; want: %d, got: %d: %s", want, got, stderr)
	}
	if !strings.Contains(stdout, "Bits per char") {
		t.Errorf("stats: unexpected output: %q", stdout)
	}
}

func TestRun_buildMetrics(t *testing.T) {
	t.Parallel()

	metricsPath := filepath.Join(t.TempDir(), "ndict.prom")
	buildDict(t, "--metrics-file", metricsPath)

	b, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), "ndict_build_success 1\n") {
		t.Errorf("unexpected metrics:\n%s", b)
	}
}

func TestRun_buildConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	corpusPath := testutil.MakeTempCorpus(t, testRecords, nil)
	vocabPath := testutil.WriteFile(t, "words.txt", []byte("cat\nrun\n"))
	configPath := testutil.WriteFile(t, "ndict.yaml", []byte(strings.Join([]string{
		"corpus:",
		"  path: " + corpusPath,
		"vocabulary:",
		"  path: " + vocabPath,
		"output:",
		"  dir: " + dir,
		"  blob: words.bin",
		"logging:",
		"  level: error",
	}, "\n")))

	code, stdout, stderr := runApp(t, "build", "--config", configPath)
	if want, got := ExitCodeSuccess, code; want != got {
		t.Fatalf("build: exit code; want: %d, got: %d: %s", want, got, stderr)
	}
	if !strings.Contains(stdout, "Entries") {
		t.Fatalf("build: unexpected output: %q", stdout)
	}

	code, _, _ = runApp(t, "lookup", "--dir", dir, "--blob", "words.bin", "dog")
	if want, got := ExitCodeUnknownError, code; want != got {
		t.Fatalf("lookup: exit code; want: %d, got: %d", want, got)
	}
	code, stdout, stderr = runApp(t, "lookup", "--dir", dir, "--blob", "words.bin", "cat")
	if want, got := ExitCodeSuccess, code; want != got {
		t.Fatalf("lookup: exit code; want: %d, got: %d: %s", want, got, stderr)
	}
	if !strings.Contains(stdout, "a <b>small</b> mammal") {
		t.Errorf("lookup: unexpected output: %q", stdout)
	}
}

func TestRun_buildError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	code, _, stderr := runApp(t, "build",
		"--corpus", filepath.Join(dir, "missing.jsonl"),
		"--output-dir", dir,
		"--log-level", "error",
	)
	if want, got := ExitCodeUnknownError, code; want != got {
		t.Fatalf("exit code; want: %d, got: %d", want, got)
	}
	if !strings.Contains(stderr, "configuration error") {
		t.Errorf("unexpected error: %q", stderr)
	}
}

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
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Source is a corpus that can be read from the start any number of times.
type Source interface {
	// Open returns a new reader positioned at the start of the corpus.
	Open() (io.ReadCloser, error)
}

// FileSource is a corpus stored in a file. Files with a ".gz" extension are
// decompressed while reading.
type FileSource string

// Open implements [Source.Open].
func (p FileSource) Open() (io.ReadCloser, error) {
	path := string(p)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) != ".gz" {
		return f, nil
	}

	z, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening corpus %q: %w", path, err)
	}
	return &gzipFile{Reader: z, f: f}, nil
}

// String implements [fmt.Stringer].
func (p FileSource) String() string {
	return string(p)
}

// gzipFile closes both the gzip stream and the file under it.
type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.f.Close())
}

// BytesSource is a corpus held in memory.
type BytesSource []byte

// Open implements [Source.Open].
func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// String implements [fmt.Stringer].
func (b BytesSource) String() string {
	return fmt.Sprintf("memory (%d bytes)", len(b))
}

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

// Package atomicfile publishes a set of files together. Files are written to
// temporary files next to their destination and renamed into place only when
// the whole set is committed.
package atomicfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileMode is the mode of published files.
const FileMode = 0o644

// ErrDone indicates that the set was already committed or aborted.
var ErrDone = errors.New("file set already committed or aborted")

// File is a temporary file that is published to Path on commit.
type File struct {
	*os.File

	// Path is the destination path.
	Path string

	// backup holds the previous destination while the set is published.
	backup string
	closed bool
}

func (f *File) close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if err := f.File.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", f.Name(), err)
	}
	return nil
}

// Set is a set of files that are published together.
type Set struct {
	files []*File
	done  bool
}

// Create creates a temporary file in the directory of path. The directory must
// already exist.
func (s *Set) Create(path string) (*File, error) {
	if s.done {
		return nil, ErrDone
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temp file for %q: %w", path, err)
	}

	file := &File{
		File: f,
		Path: path,
	}
	s.files = append(s.files, file)
	return file, nil
}

// Commit syncs and closes every file and then renames them to their
// destinations. Existing destination files are moved aside first. If any file
// cannot be published, the destinations that were already replaced are
// restored and nothing is published. Temporary files are always removed.
func (s *Set) Commit() error {
	if s.done {
		return ErrDone
	}

	for _, f := range s.files {
		if err := f.Sync(); err != nil {
			return errors.Join(fmt.Errorf("syncing %q: %w", f.Name(), err), s.Abort())
		}
		if err := f.close(); err != nil {
			return errors.Join(err, s.Abort())
		}
		if err := os.Chmod(f.Name(), FileMode); err != nil {
			return errors.Join(fmt.Errorf("setting mode of %q: %w", f.Name(), err), s.Abort())
		}
	}

	for i, f := range s.files {
		if err := f.publish(); err != nil {
			return errors.Join(err, rollback(s.files[:i]), s.Abort())
		}
	}
	s.done = true

	var errs []error
	for _, f := range s.files {
		if f.backup == "" {
			continue
		}
		if err := os.Remove(f.backup); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("removing %q: %w", f.backup, err))
		}
	}
	return errors.Join(errs...)
}

// publish moves an existing regular file at the destination to a backup and
// renames the temporary file into place. The backup is restored if the rename
// fails. Destinations that are not regular files are left for the rename to
// reject.
func (f *File) publish() error {
	fi, err := os.Lstat(f.Path)
	switch {
	case err == nil && fi.Mode().IsRegular():
		backup := strings.TrimSuffix(f.Name(), ".tmp") + ".bak"
		if err := os.Rename(f.Path, backup); err != nil {
			return fmt.Errorf("backing up %q: %w", f.Path, err)
		}
		f.backup = backup
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("publishing %q: %w", f.Path, err)
	}

	if err := os.Rename(f.Name(), f.Path); err != nil {
		err = fmt.Errorf("publishing %q: %w", f.Path, err)
		if f.backup != "" {
			err = errors.Join(err, f.restore())
		}
		return err
	}
	return nil
}

// restore puts the previous destination back. A destination that did not
// exist before is removed.
func (f *File) restore() error {
	if f.backup == "" {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %q: %w", f.Path, err)
		}
		return nil
	}
	if err := os.Rename(f.backup, f.Path); err != nil {
		return fmt.Errorf("restoring %q: %w", f.Path, err)
	}
	f.backup = ""
	return nil
}

// rollback restores the destinations of files that were already published.
func rollback(published []*File) error {
	var errs []error
	for i := len(published) - 1; i >= 0; i-- {
		if err := published[i].restore(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Abort closes and removes every temporary file. Abort is a no-op after the
// set was committed or aborted.
func (s *Set) Abort() error {
	if s.done {
		return nil
	}
	s.done = true

	var errs []error
	for _, f := range s.files {
		if err := f.close(); err != nil {
			errs = append(errs, err)
		}
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("removing %q: %w", f.Name(), err))
		}
	}
	return errors.Join(errs...)
}

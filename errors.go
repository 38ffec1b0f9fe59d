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

package ndict

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates that build options are missing or point to
	// files that cannot be read.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound indicates that a word is not in the dictionary.
	ErrNotFound = errors.New("word not found")

	// ErrCorpusChanged indicates that the corpus returned different records
	// on the second pass.
	ErrCorpusChanged = errors.New("corpus changed between passes")
)

// ConfigError is returned when a build option is not valid.
type ConfigError struct {
	// Option is the name of the option.
	Option string

	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrConfiguration, e.Option, e.Err)
}

func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}

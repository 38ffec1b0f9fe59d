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

// Package config loads build configuration from a YAML file with NDICT_*
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-ndict/corpus"
)

// ErrInvalid indicates that a configuration value is not valid.
var ErrInvalid = errors.New("invalid configuration")

// Config is the build configuration.
type Config struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Filter     FilterConfig     `yaml:"filter"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// CorpusConfig is the location of the corpus and how malformed lines are
// handled.
type CorpusConfig struct {
	Path string `yaml:"path"`

	// ParsePolicy is either "abort" or "skip".
	ParsePolicy string `yaml:"parsePolicy"`
}

// VocabularyConfig is the ranked word list.
type VocabularyConfig struct {
	Path string `yaml:"path"`

	// Size is the number of ranked words kept. Zero keeps all words.
	Size int `yaml:"size"`
}

// FilterConfig controls gloss normalization.
type FilterConfig struct {
	StripMarkup    bool `yaml:"stripMarkup"`
	FoldWhitespace bool `yaml:"foldWhitespace"`
}

// OutputConfig holds the artifact paths. Relative paths are resolved against
// Dir.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Table   string `yaml:"table"`
	Blob    string `yaml:"blob"`
	Index   string `yaml:"index"`
	DictZip bool   `yaml:"dictzip"`
}

// LoggingConfig controls the log level and format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the metrics textfile.
type MetricsConfig struct {
	// File is the path of a Prometheus textfile written after the build.
	File string `yaml:"file"`
}

// Load reads a YAML config file (if provided) and applies environment
// variable overrides. Missing values keep their defaults.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg, lookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{
			ParsePolicy: corpus.ParseAbort.String(),
		},
		Vocabulary: VocabularyConfig{
			Size: corpus.DefaultVocabularySize,
		},
		Filter: FilterConfig{
			FoldWhitespace: corpus.DefaultFilterOptions.FoldWhitespace,
			StripMarkup:    corpus.DefaultFilterOptions.StripMarkup,
		},
		Output: OutputConfig{
			Dir:   ".",
			Table: "codes.csv",
			Blob:  "dictionary.bin",
			Index: "index.csv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyEnvOverrides reads NDICT_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config, lookupEnv func(string) (string, bool)) error {
	strs := map[string]*string{
		"NDICT_CORPUS_PATH":         &cfg.Corpus.Path,
		"NDICT_CORPUS_PARSE_POLICY": &cfg.Corpus.ParsePolicy,
		"NDICT_VOCABULARY_PATH":     &cfg.Vocabulary.Path,
		"NDICT_OUTPUT_DIR":          &cfg.Output.Dir,
		"NDICT_OUTPUT_TABLE":        &cfg.Output.Table,
		"NDICT_OUTPUT_BLOB":         &cfg.Output.Blob,
		"NDICT_OUTPUT_INDEX":        &cfg.Output.Index,
		"NDICT_LOGGING_LEVEL":       &cfg.Logging.Level,
		"NDICT_LOGGING_FORMAT":      &cfg.Logging.Format,
		"NDICT_METRICS_FILE":        &cfg.Metrics.File,
	}
	for name, field := range strs {
		if v, ok := lookupEnv(name); ok && v != "" {
			*field = v
		}
	}

	if v, ok := lookupEnv("NDICT_VOCABULARY_SIZE"); ok && v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: NDICT_VOCABULARY_SIZE: %w", ErrInvalid, err)
		}
		cfg.Vocabulary.Size = size
	}

	bools := map[string]*bool{
		"NDICT_FILTER_STRIP_MARKUP":    &cfg.Filter.StripMarkup,
		"NDICT_FILTER_FOLD_WHITESPACE": &cfg.Filter.FoldWhitespace,
		"NDICT_OUTPUT_DICTZIP":         &cfg.Output.DictZip,
	}
	for name, field := range bools {
		v, ok := lookupEnv(name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, name, err)
		}
		*field = b
	}
	return nil
}

// Validate checks the configuration values. It does not check that files
// exist.
func (c *Config) Validate() error {
	if _, err := c.Corpus.Policy(); err != nil {
		return err
	}
	if c.Vocabulary.Size < 0 {
		return fmt.Errorf("%w: negative vocabulary size %d", ErrInvalid, c.Vocabulary.Size)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Logging.Format)
	}
	return nil
}

// Policy returns the parsed malformed line policy.
func (c CorpusConfig) Policy() (corpus.ParsePolicy, error) {
	for _, p := range []corpus.ParsePolicy{corpus.ParseAbort, corpus.ParseSkip} {
		if c.ParsePolicy == p.String() {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown parse policy %q", ErrInvalid, c.ParsePolicy)
}

// TablePath returns the path of the code table.
func (o OutputConfig) TablePath() string {
	return o.resolve(o.Table)
}

// BlobPath returns the path of the blob.
func (o OutputConfig) BlobPath() string {
	return o.resolve(o.Blob)
}

// IndexPath returns the path of the index.
func (o OutputConfig) IndexPath() string {
	return o.resolve(o.Index)
}

func (o OutputConfig) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.Dir, path)
}

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

// Package metrics defines the Prometheus collectors for a dictionary build
// and writes them as a node exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ianlewis/go-ndict"
)

const namespace = "ndict"

// Metrics holds the collectors of a single build.
type Metrics struct {
	registry *prometheus.Registry

	Success         prometheus.Gauge
	DurationSeconds prometheus.Gauge
	LastRunSeconds  prometheus.Gauge
	Records         *prometheus.GaugeVec
	Entries         *prometheus.GaugeVec
	Symbols         prometheus.Gauge
	BlobBytes       prometheus.Gauge
	Chars           prometheus.Gauge
	Bits            prometheus.Gauge
}

func newGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "build",
		Name:      name,
		Help:      help,
	})
}

// New creates the collectors and registers them with a new registry.
func New() *Metrics {
	m := &Metrics{
		registry:        prometheus.NewRegistry(),
		Success:         newGauge("success", "Whether the last build succeeded."),
		DurationSeconds: newGauge("duration_seconds", "Duration of the last build in seconds."),
		LastRunSeconds:  newGauge("last_run_timestamp_seconds", "Unix time the last build finished."),
		Records: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "build",
				Name:      "corpus_records",
				Help:      "Number of corpus records by outcome.",
			},
			[]string{"outcome"},
		),
		Entries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "build",
				Name:      "entries",
				Help:      "Number of selector candidates and written entries.",
			},
			[]string{"kind"},
		),
		Symbols:   newGauge("symbols", "Number of characters in the code table."),
		BlobBytes: newGauge("blob_bytes", "Size of the blob in bytes."),
		Chars:     newGauge("encoded_chars", "Number of characters encoded."),
		Bits:      newGauge("encoded_bits", "Number of code bits written, excluding padding."),
	}

	m.registry.MustRegister(
		m.Success,
		m.DurationSeconds,
		m.LastRunSeconds,
		m.Records,
		m.Entries,
		m.Symbols,
		m.BlobBytes,
		m.Chars,
		m.Bits,
	)

	return m
}

// ObserveBuild records the stats of a successful build.
func (m *Metrics) ObserveBuild(stats *ndict.Stats, d time.Duration, now time.Time) {
	m.observeRun(true, d, now)

	m.Records.WithLabelValues("read").Set(float64(stats.Records))
	m.Records.WithLabelValues("skipped").Set(float64(stats.Skipped))
	m.Records.WithLabelValues("accepted").Set(float64(stats.Accepted))
	m.Entries.WithLabelValues("candidate").Set(float64(stats.Candidates))
	m.Entries.WithLabelValues("written").Set(float64(stats.Entries))
	m.Entries.WithLabelValues("empty").Set(float64(stats.EmptyEntries))
	m.Symbols.Set(float64(stats.Symbols))
	m.BlobBytes.Set(float64(stats.BlobSize))
	m.Chars.Set(float64(stats.Chars))
	m.Bits.Set(float64(stats.Bits))
}

// ObserveFailure records a failed build.
func (m *Metrics) ObserveFailure(d time.Duration, now time.Time) {
	m.observeRun(false, d, now)
}

func (m *Metrics) observeRun(success bool, d time.Duration, now time.Time) {
	if success {
		m.Success.Set(1)
	} else {
		m.Success.Set(0)
	}
	m.DurationSeconds.Set(d.Seconds())
	m.LastRunSeconds.Set(float64(now.Unix()))
}

// WriteFile writes the metrics to path in the text exposition format. The
// file is replaced atomically.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %q: %w", path, err)
	}
	return nil
}

// Package metrics records run statistics as Prometheus
// gauges and writes them in the node_exporter textfile
// format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "autonorm"
	subsystem = "run"
)

var labels = []string{"pipeline", "norm", "language"}

// Run holds the gauges for a single pipeline run.
type Run struct {
	Registry *prometheus.Registry

	VocabularyWords *prometheus.GaugeVec
	DuplicateWords  *prometheus.GaugeVec
	NormWords       *prometheus.GaugeVec
	CoveredWords    *prometheus.GaugeVec
	Correlation     *prometheus.GaugeVec
	Duration        *prometheus.GaugeVec

	values []string
	start  time.Time
}

// NewRun creates gauges for a run of the named pipeline
// and starts the run's clock.
func NewRun(pipeline, norm, language string) *Run {
	r := &Run{
		Registry: prometheus.NewRegistry(),
		values:   []string{pipeline, norm, language},
		start:    time.Now(),
	}
	r.VocabularyWords = r.gauge("vocabulary_words", "Number of rows in the loaded vocabulary.")
	r.DuplicateWords = r.gauge("duplicate_words", "Number of vocabulary rows repeating an earlier word.")
	r.NormWords = r.gauge("norm_words", "Number of distinct rated words.")
	r.CoveredWords = r.gauge("covered_words", "Number of vocabulary rows with a rating.")
	r.Correlation = r.gauge("correlation", "Pearson correlation between ratings and estimates.")
	r.Duration = r.gauge("duration_seconds", "Wall time of the run.")
	return r
}

func (r *Run) gauge(name, help string) *prometheus.GaugeVec {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
	r.Registry.MustRegister(g)
	return g
}

// Set sets a gauge for this run.
func (r *Run) Set(g *prometheus.GaugeVec, value float64) {
	g.WithLabelValues(r.values...).Set(value)
}

// Finish records the run's duration.
func (r *Run) Finish() {
	r.Set(r.Duration, time.Since(r.start).Seconds())
}

// WriteFile writes all gauges to path. An empty path is a
// no-op.
func (r *Run) WriteFile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.Registry)
}

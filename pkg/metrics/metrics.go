// Package metrics provides performance tracking and observability for
// scrub using Prometheus metrics. It offers collectors for the cleaning
// pipeline: datasets processed, rows removed per stage, imputed cells,
// and processing latency.
//
// # Basic Usage
//
//	// Record a processed dataset
//	metrics.DatasetsProcessed.WithLabelValues("success").Inc()
//
//	// Track rows removed by a stage
//	metrics.RowsDropped.WithLabelValues("dedup").Add(float64(removed))
//
//	// Track processing latency
//	timer := metrics.NewTimer()
//	result := processor.Process(ctx, input)
//	timer.ObserveDuration()
//
// Metrics are registered on the default Prometheus registry; the host
// application decides whether and where to expose them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatasetsProcessed tracks pipeline invocations by outcome.
	// Labels: status (success/failure)
	DatasetsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrub_datasets_processed_total",
			Help: "Total number of datasets submitted to the pipeline",
		},
		[]string{"status"},
	)

	// RowsProcessed tracks the total number of rows surviving the pipeline.
	RowsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scrub_rows_processed_total",
			Help: "Total number of rows in successfully cleaned tables",
		},
	)

	// RowsDropped tracks rows removed by each cleaning stage.
	// Labels: stage (dedup/outliers/missing)
	RowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrub_rows_dropped_total",
			Help: "Total number of rows removed by cleaning stages",
		},
		[]string{"stage"},
	)

	// CellsImputed tracks absent cells filled by the imputation stage.
	// Labels: strategy (mean/median)
	CellsImputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrub_cells_imputed_total",
			Help: "Total number of absent cells filled with imputed values",
		},
		[]string{"strategy"},
	)

	// ProcessingDuration tracks the distribution of per-invocation
	// pipeline latencies in seconds.
	ProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "scrub_processing_duration_seconds",
			Help: "Pipeline processing latency in seconds",
			Buckets: []float64{
				.0001, // small in-memory tables
				.001,
				.01,
				.1,
				1,
				10, // very large tables
			},
		},
	)
)

// Timer measures a single pipeline invocation and records it into
// ProcessingDuration.
type Timer struct {
	start time.Time
}

// NewTimer starts a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time and returns it.
func (t *Timer) ObserveDuration() time.Duration {
	d := time.Since(t.start)
	ProcessingDuration.Observe(d.Seconds())
	return d
}

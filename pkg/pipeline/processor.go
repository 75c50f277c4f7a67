// Package pipeline provides the cleaning and validation pipeline for
// scrub. A Processor orchestrates deduplication, outlier removal and
// missing-value handling over in-memory tables, producing one Result
// per submitted table.
//
// # Overview
//
// The pipeline package provides:
//   - Synchronous four-stage cleaning (dedup, outliers, missing values, stats)
//   - A Transformation capability for custom cleaning steps
//   - Structured failure reporting through Result instead of raised errors
//   - Running throughput statistics per Processor
//
// # Basic Usage
//
//	cfg := config.NewDefaultConfig()
//	cfg.MissingValueStrategy = config.StrategyMedian
//
//	processor := pipeline.NewProcessor(cfg)
//	result := processor.Process(ctx, input)
//	if !result.Success {
//	    log.Warn("cleaning failed", zap.Any("error", result.Stats["error"]))
//	}
//
// Every stage runs to completion on the calling goroutine; there is no
// internal parallelism. A Processor serializes its own counters, but
// batch workloads should prefer one Processor per worker.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scrubdata/scrub/pkg/config"
	"github.com/scrubdata/scrub/pkg/logger"
	"github.com/scrubdata/scrub/pkg/metrics"
	"github.com/scrubdata/scrub/pkg/table"
)

// Processor orchestrates the cleaning pipeline. It holds an ordered
// sequence of transformations plus running counters; construct one per
// pipeline configuration with NewProcessor.
type Processor struct {
	cfg        *config.Config
	transforms []Transformation
	logger     *zap.Logger

	mu             sync.Mutex // protects totalProcessed
	totalProcessed int64
	startTime      time.Time
}

// ProcessingStats is a read-only snapshot of a Processor's running
// counters.
type ProcessingStats struct {
	TotalProcessed    int64   `json:"total_processed"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
	AverageThroughput float64 `json:"average_throughput"`
}

// NewProcessor creates a Processor with the default cleaning stages:
// deduplication, IQR outlier removal, and missing-value handling per
// the configured strategy. A nil config uses the defaults.
func NewProcessor(cfg *config.Config) *Processor {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	log := logger.With(zap.String("component", "processor"))

	p := &Processor{
		cfg:       cfg,
		logger:    log,
		startTime: time.Now(),
	}
	p.transforms = []Transformation{
		NewDedup(log),
		NewOutlierFilter(log),
		NewImputer(cfg.MissingValueStrategy, log),
	}
	return p
}

// AddTransformation appends a custom transformation, applied after the
// built-in cleaning stages on every subsequent Process call.
func (p *Processor) AddTransformation(tr Transformation) {
	p.transforms = append(p.transforms, tr)
}

// Process runs the cleaning pipeline over the input table and returns
// one Result. Data-quality conditions (empty input, missing values,
// outliers, malformed columns) never surface as errors; they are
// reported through the Result so batch callers can keep submitting
// tables. The input table is never mutated.
//
// The context enriches log output; every log line of the invocation
// carries the run id, which is also the ID of the returned Result. No
// stage suspends or honors cancellation once started.
func (p *Processor) Process(ctx context.Context, input *table.Table) *Result {
	runID := uuid.NewString()
	ctx = context.WithValue(ctx, logger.RunIDKey, runID)

	log := logger.WithContext(ctx).With(zap.String("component", "processor"))
	timer := metrics.NewTimer()
	defer timer.ObserveDuration()

	if input == nil || input.NumRows() == 0 {
		log.Warn("received empty dataset")
		metrics.DatasetsProcessed.WithLabelValues("failure").Inc()
		return newFailedResult(runID, "Empty dataset provided")
	}

	cleaned := input
	for _, tr := range p.transforms {
		stageLog := logger.WithContext(context.WithValue(ctx, logger.StageKey, tr.Name()))
		next, err := tr.Apply(cleaned)
		if err != nil {
			stageLog.Error("processing failed", zap.Error(err))
			metrics.DatasetsProcessed.WithLabelValues("failure").Inc()
			return newFailedResult(runID, err.Error())
		}
		cleaned = next
		stageLog.Debug("applied transformation", zap.Int("rows", cleaned.NumRows()))
	}

	recordCount := cleaned.NumRows()
	resultStats := map[string]interface{}{
		"record_count":    recordCount,
		"missing_values":  cleaned.MissingCounts(),
		"processing_time": int(time.Since(p.startTime).Seconds()),
	}

	p.mu.Lock()
	p.totalProcessed += int64(recordCount)
	p.mu.Unlock()

	metrics.DatasetsProcessed.WithLabelValues("success").Inc()
	metrics.RowsProcessed.Add(float64(recordCount))

	log.Info("successfully processed records", zap.Int("record_count", recordCount))

	return newSuccessResult(runID, cleaned, resultStats)
}

// Stats returns a snapshot of the running totals for this Processor.
// TotalProcessed is non-decreasing across sequential Process calls.
func (p *Processor) Stats() ProcessingStats {
	p.mu.Lock()
	total := p.totalProcessed
	p.mu.Unlock()

	uptime := int64(time.Since(p.startTime).Seconds())
	snapshot := ProcessingStats{
		TotalProcessed: total,
		UptimeSeconds:  float64(uptime),
	}
	if uptime > 0 {
		snapshot.AverageThroughput = float64(total) / float64(uptime)
	}
	return snapshot
}

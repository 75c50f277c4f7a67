package pipeline

import (
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/scrubdata/scrub/pkg/table"
)

// Result is the outcome container for one pipeline invocation. Exactly
// one of the two shapes is produced: Success true with Data present and
// record_count/processing_time stats, or Success false with Data nil
// and an error entry in Stats. A Result is owned by the caller and
// holds no reference back to the Processor.
type Result struct {
	// ID uniquely identifies the processing run; the same id appears on
	// every log line the run emitted
	ID string `json:"id"`

	// Data is the cleaned table; nil when Success is false
	Data *table.Table `json:"-"`

	// Stats carries the statistics mapping for the invocation
	Stats map[string]interface{} `json:"stats"`

	// Success reports whether the pipeline completed
	Success bool `json:"success"`

	// ProcessedAt records when the result was produced
	ProcessedAt time.Time `json:"processed_at"`
}

func newSuccessResult(id string, data *table.Table, stats map[string]interface{}) *Result {
	return &Result{
		ID:          id,
		Data:        data,
		Stats:       stats,
		Success:     true,
		ProcessedAt: time.Now(),
	}
}

func newFailedResult(id, message string) *Result {
	return &Result{
		ID:          id,
		Data:        nil,
		Stats:       map[string]interface{}{"error": message},
		Success:     false,
		ProcessedAt: time.Now(),
	}
}

// Summary generates a compact summary of the processing results.
func (r *Result) Summary() map[string]interface{} {
	recordCount := 0
	if r.Data != nil {
		recordCount = r.Data.NumRows()
	}

	processingTime, ok := r.Stats["processing_time"]
	if !ok {
		processingTime = 0
	}

	return map[string]interface{}{
		"id":              r.ID,
		"success":         r.Success,
		"record_count":    recordCount,
		"processing_time": processingTime,
		"processed_at":    r.ProcessedAt.Format(time.RFC3339),
	}
}

// SummaryJSON encodes the summary for reporting.
func (r *Result) SummaryJSON() ([]byte, error) {
	return gojson.MarshalIndent(r.Summary(), "", "  ")
}

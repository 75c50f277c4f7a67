// Package scrub provides a cleaning and validation pipeline for tabular
// datasets, preparing raw tables for downstream analysis.
//
// The pipeline removes duplicate rows, strips statistical outliers using
// the interquartile-range rule, fills or drops missing values according
// to a configurable strategy, and checks results against a declared
// schema. Failures are reported as structured results rather than raised
// errors, so batch callers can keep submitting datasets.
//
// # Architecture
//
// scrub is organized around a small set of packages:
//
//   - table: immutable, ordered collections of named, typed columns
//   - schema: declarative dataset contracts, validated against tables
//   - config: strongly typed pipeline configuration with YAML and
//     environment loaders
//   - pipeline: the Processor orchestrating dedup, outlier removal,
//     missing-value handling and statistics
//   - tableio: CSV loading and storing with gzip support
//
// # Quick Start
//
// Clean a table with the default configuration:
//
//	import (
//	    "context"
//
//	    "github.com/scrubdata/scrub/pkg/config"
//	    "github.com/scrubdata/scrub/pkg/pipeline"
//	    "github.com/scrubdata/scrub/pkg/tableio"
//	)
//
//	input, err := tableio.ReadFile("data.csv")
//	if err != nil {
//	    return err
//	}
//
//	processor := pipeline.NewProcessor(config.NewDefaultConfig())
//	result := processor.Process(context.Background(), input)
//	if !result.Success {
//	    return fmt.Errorf("cleaning failed: %v", result.Stats["error"])
//	}
//
// Validate the cleaned table against a schema:
//
//	declared, err := schema.LoadFile("schema.yaml")
//	if err != nil {
//	    return err
//	}
//	if _, err := declared.Validate(result.Data); err != nil {
//	    return err
//	}
package scrub

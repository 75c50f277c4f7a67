// Package testutil provides testing utilities for scrub
package testutil

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/scrubdata/scrub/pkg/table"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// MustTable builds a table from the given columns, failing the test on
// construction errors.
func MustTable(t *testing.T, columns ...table.Column) *table.Table {
	t.Helper()
	tbl, err := table.New(columns...)
	if err != nil {
		t.Fatalf("failed to build test table: %v", err)
	}
	return tbl
}

// FloatColumn builds a float64 column where NaN cells mark missing values.
func FloatColumn(name string, values ...float64) table.Column {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return table.Column{Name: name, Type: table.TypeFloat64, Values: cells}
}

// IntColumn builds an int64 column.
func IntColumn(name string, values ...int64) table.Column {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return table.Column{Name: name, Type: table.TypeInt64, Values: cells}
}

// StringColumn builds a text column.
func StringColumn(name string, values ...string) table.Column {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return table.Column{Name: name, Type: table.TypeString, Values: cells}
}

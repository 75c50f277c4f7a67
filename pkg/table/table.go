// Package table provides the in-memory tabular data model for scrub.
// A Table is an ordered collection of named, typed columns sharing a
// fixed row count. Tables are immutable: filtering and filling always
// produce a new Table, leaving the original untouched.
package table

import (
	"fmt"
	"math"
	"sort"

	gojson "github.com/goccy/go-json"

	"github.com/scrubdata/scrub/pkg/errors"
)

// ColumnType identifies the semantic type of a column. Type tags are
// exact string identifiers, so int64 and float64 columns are distinct.
type ColumnType string

const (
	// TypeInt64 is a 64-bit integer column
	TypeInt64 ColumnType = "int64"
	// TypeFloat64 is a 64-bit floating point column
	TypeFloat64 ColumnType = "float64"
	// TypeString is a free-text column
	TypeString ColumnType = "string"
	// TypeCategorical is a column holding values from a small fixed set
	TypeCategorical ColumnType = "category"
)

// Numeric reports whether arithmetic operations (mean, median, quartiles)
// apply to columns of this type.
func (t ColumnType) Numeric() bool {
	return t == TypeInt64 || t == TypeFloat64
}

// Column is a named, typed sequence of cell values. A nil cell is a
// missing value; for float columns NaN also counts as missing.
type Column struct {
	Name   string
	Type   ColumnType
	Values []interface{}
}

// Table is an ordered set of equally sized columns. Row identity is
// positional. The zero value is not usable; construct with New.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New creates a Table from the given columns. All columns must have
// unique names and equal lengths.
func New(columns ...Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		if col.Name == "" {
			return nil, errors.New(errors.ErrorTypeData, "column name cannot be empty")
		}
		if _, exists := t.index[col.Name]; exists {
			return nil, errors.New(errors.ErrorTypeData,
				fmt.Sprintf("duplicate column name %q", col.Name))
		}
		if i == 0 {
			t.rows = len(col.Values)
		} else if len(col.Values) != t.rows {
			return nil, errors.New(errors.ErrorTypeData,
				fmt.Sprintf("column %q has %d rows, expected %d", col.Name, len(col.Values), t.rows))
		}
		t.index[col.Name] = len(t.columns)
		t.columns = append(t.columns, col)
	}

	return t, nil
}

// MustNew is like New but panics on error. Intended for tests and
// literals whose validity is known at compile time.
func MustNew(columns ...Column) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// NumRows returns the shared row count.
func (t *Table) NumRows() int { return t.rows }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.columns) }

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column. The returned Column shares its
// values slice with the table; callers must not modify it.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Columns returns all columns in declaration order. The slice is a
// copy but the value slices are shared; callers must not modify them.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Value returns the cell at (column, row). It returns nil for unknown
// columns or out-of-range rows.
func (t *Table) Value(name string, row int) interface{} {
	i, ok := t.index[name]
	if !ok || row < 0 || row >= t.rows {
		return nil
	}
	return t.columns[i].Values[row]
}

// IsMissing reports whether the cell at (column, row) is absent. A cell
// is absent when it is nil or a floating point NaN.
func (t *Table) IsMissing(name string, row int) bool {
	return CellMissing(t.Value(name, row))
}

// CellMissing reports whether a single cell value counts as absent.
func CellMissing(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	default:
		return false
	}
}

// MissingCount returns the number of absent cells in the named column.
func (t *Table) MissingCount(name string) int {
	i, ok := t.index[name]
	if !ok {
		return 0
	}
	count := 0
	for _, v := range t.columns[i].Values {
		if CellMissing(v) {
			count++
		}
	}
	return count
}

// MissingCounts returns the per-column count of absent cells.
func (t *Table) MissingCounts() map[string]int {
	counts := make(map[string]int, len(t.columns))
	for _, col := range t.columns {
		counts[col.Name] = t.MissingCount(col.Name)
	}
	return counts
}

// NumericValues returns the present values of a numeric column as
// float64s, in row order. Absent cells and cells that are not numeric
// are skipped. The second return is false when the column is unknown
// or not of a numeric type.
func (t *Table) NumericValues(name string) ([]float64, bool) {
	i, ok := t.index[name]
	if !ok || !t.columns[i].Type.Numeric() {
		return nil, false
	}
	vals := make([]float64, 0, t.rows)
	for _, v := range t.columns[i].Values {
		if f, ok := AsFloat(v); ok {
			vals = append(vals, f)
		}
	}
	return vals, true
}

// AsFloat converts a cell to float64. It returns false for absent
// cells and non-numeric values.
func AsFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return x, true
	case float32:
		if math.IsNaN(float64(x)) {
			return 0, false
		}
		return float64(x), true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	default:
		return 0, false
	}
}

// Select returns a new Table containing only the given rows, in the
// given order. Cell values are copied so the result is independent of
// the receiver.
func (t *Table) Select(rows []int) (*Table, error) {
	columns := make([]Column, len(t.columns))
	for i, col := range t.columns {
		values := make([]interface{}, 0, len(rows))
		for _, r := range rows {
			if r < 0 || r >= t.rows {
				return nil, errors.New(errors.ErrorTypeData,
					fmt.Sprintf("row index %d out of range [0, %d)", r, t.rows))
			}
			values = append(values, col.Values[r])
		}
		columns[i] = Column{Name: col.Name, Type: col.Type, Values: values}
	}
	return New(columns...)
}

// WithValues returns a new Table with the named column's values
// replaced. The replacement must match the table's row count. All other
// columns are copied.
func (t *Table) WithValues(name string, values []interface{}) (*Table, error) {
	if _, ok := t.index[name]; !ok {
		return nil, errors.New(errors.ErrorTypeData,
			fmt.Sprintf("unknown column %q", name))
	}
	if len(values) != t.rows {
		return nil, errors.New(errors.ErrorTypeData,
			fmt.Sprintf("replacement for column %q has %d rows, expected %d", name, len(values), t.rows))
	}

	columns := make([]Column, len(t.columns))
	for i, col := range t.columns {
		copied := make([]interface{}, t.rows)
		if col.Name == name {
			copy(copied, values)
		} else {
			copy(copied, col.Values)
		}
		columns[i] = Column{Name: col.Name, Type: col.Type, Values: copied}
	}
	return New(columns...)
}

// RowKey returns an exact-equality fingerprint of a row across all
// columns. Two rows have equal keys iff every cell compares equal, with
// absent cells normalized so that nil and NaN coincide.
func (t *Table) RowKey(row int) (string, error) {
	cells := make([]interface{}, len(t.columns))
	for i, col := range t.columns {
		v := col.Values[row]
		if CellMissing(v) {
			v = nil
		}
		cells[i] = v
	}
	data, err := gojson.Marshal(cells)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeData, "failed to fingerprint row")
	}
	return string(data), nil
}

// SortedColumnNames returns the column names in lexical order. Useful
// for deterministic reporting.
func (t *Table) SortedColumnNames() []string {
	names := t.ColumnNames()
	sort.Strings(names)
	return names
}

package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrubdata/scrub/pkg/errors"
	"github.com/scrubdata/scrub/pkg/table"
)

func testSchema() *Schema {
	s := New("test_dataset", "1.0")
	s.RequiredColumns = []string{"id", "value"}
	s.ColumnTypes = map[string]string{
		"id":       "int64",
		"value":    "float64",
		"category": "string",
	}
	return s
}

func testTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.Column{Name: "id", Type: table.TypeInt64, Values: []interface{}{int64(1), int64(2)}},
		table.Column{Name: "value", Type: table.TypeFloat64, Values: []interface{}{1.0, 2.0}},
		table.Column{Name: "category", Type: table.TypeString, Values: []interface{}{"A", "B"}},
	)
	require.NoError(t, err)
	return tbl
}

func TestSchema_Validate_Success(t *testing.T) {
	ok, err := testSchema().Validate(testTable(t))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSchema_Validate_MissingRequiredColumn(t *testing.T) {
	tbl, err := table.New(
		table.Column{Name: "value", Type: table.TypeFloat64, Values: []interface{}{1.0}},
	)
	require.NoError(t, err)

	ok, err := testSchema().Validate(tbl)
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "Missing required columns")
	assert.Contains(t, err.Error(), "id")
	assert.NotContains(t, err.Error(), "value", "present columns are not reported missing")
}

func TestSchema_Validate_MissingColumnsSorted(t *testing.T) {
	s := New("test_dataset", "1.0")
	s.RequiredColumns = []string{"zeta", "alpha"}

	tbl, err := table.New(
		table.Column{Name: "other", Type: table.TypeString, Values: []interface{}{"x"}},
	)
	require.NoError(t, err)

	_, err = s.Validate(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing required columns: [alpha zeta]")
}

func TestSchema_Validate_TypeMismatch(t *testing.T) {
	s := testSchema()
	s.ColumnTypes["value"] = "int64"

	ok, err := s.Validate(testTable(t))
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "Column 'value' has type float64, expected int64")
}

func TestSchema_Validate_RequiredChecksRunFirst(t *testing.T) {
	// Table is both missing a required column and carries a type
	// mismatch; the missing-column failure must win.
	s := testSchema()
	s.ColumnTypes["category"] = "int64"

	tbl, err := table.New(
		table.Column{Name: "value", Type: table.TypeFloat64, Values: []interface{}{1.0}},
		table.Column{Name: "category", Type: table.TypeString, Values: []interface{}{"A"}},
	)
	require.NoError(t, err)

	_, err = s.Validate(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing required columns")
}

func TestSchema_Validate_SkipsAbsentDeclaredColumns(t *testing.T) {
	// "category" is declared but not required; dropping it must not fail
	tbl, err := table.New(
		table.Column{Name: "id", Type: table.TypeInt64, Values: []interface{}{int64(1)}},
		table.Column{Name: "value", Type: table.TypeFloat64, Values: []interface{}{1.0}},
	)
	require.NoError(t, err)

	ok, err := testSchema().Validate(tbl)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSchema_Validate_RequiredNotSubsetOfTypes(t *testing.T) {
	s := New("test_dataset", "1.0")
	s.RequiredColumns = []string{"untyped"}

	tbl, err := table.New(
		table.Column{Name: "untyped", Type: table.TypeString, Values: []interface{}{"x"}},
	)
	require.NoError(t, err)

	ok, err := s.Validate(tbl)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoadFile(t *testing.T) {
	content := `name: events
version: "2.1"
required_columns:
  - id
  - value
column_types:
  id: int64
  value: float64
metadata:
  owner: analytics
`
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "events", s.Name)
	assert.Equal(t, "2.1", s.Version)
	assert.Equal(t, []string{"id", "value"}, s.RequiredColumns)
	assert.Equal(t, "float64", s.ColumnTypes["value"])
	assert.Equal(t, "analytics", s.Metadata["owner"])
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(
		Column{Name: "id", Type: TypeInt64, Values: []interface{}{int64(1), int64(2), int64(3)}},
		Column{Name: "value", Type: TypeFloat64, Values: []interface{}{1.5, nil, 3.5}},
		Column{Name: "category", Type: TypeCategorical, Values: []interface{}{"A", "B", "A"}},
	)
	require.NoError(t, err)
	return tbl
}

func TestNew_Validation(t *testing.T) {
	t.Run("duplicate column name", func(t *testing.T) {
		_, err := New(
			Column{Name: "id", Type: TypeInt64, Values: []interface{}{int64(1)}},
			Column{Name: "id", Type: TypeInt64, Values: []interface{}{int64(2)}},
		)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate column name")
	})

	t.Run("mismatched row counts", func(t *testing.T) {
		_, err := New(
			Column{Name: "a", Type: TypeInt64, Values: []interface{}{int64(1), int64(2)}},
			Column{Name: "b", Type: TypeInt64, Values: []interface{}{int64(1)}},
		)
		assert.Error(t, err)
	})

	t.Run("empty column name", func(t *testing.T) {
		_, err := New(Column{Name: "", Type: TypeInt64, Values: nil})
		assert.Error(t, err)
	})

	t.Run("zero rows is valid", func(t *testing.T) {
		tbl, err := New(Column{Name: "id", Type: TypeInt64, Values: []interface{}{}})
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.NumRows())
	})
}

func TestTable_Accessors(t *testing.T) {
	tbl := sampleTable(t)

	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 3, tbl.NumColumns())
	assert.Equal(t, []string{"id", "value", "category"}, tbl.ColumnNames())
	assert.Equal(t, []string{"category", "id", "value"}, tbl.SortedColumnNames())
	assert.True(t, tbl.HasColumn("value"))
	assert.False(t, tbl.HasColumn("missing"))

	col, ok := tbl.Column("value")
	require.True(t, ok)
	assert.Equal(t, TypeFloat64, col.Type)

	assert.Equal(t, int64(2), tbl.Value("id", 1))
	assert.Nil(t, tbl.Value("id", 99))
	assert.Nil(t, tbl.Value("unknown", 0))
}

func TestTable_Missing(t *testing.T) {
	tbl, err := New(
		Column{Name: "value", Type: TypeFloat64, Values: []interface{}{1.0, nil, math.NaN(), 4.0}},
		Column{Name: "name", Type: TypeString, Values: []interface{}{"a", "b", nil, "d"}},
	)
	require.NoError(t, err)

	assert.True(t, tbl.IsMissing("value", 1))
	assert.True(t, tbl.IsMissing("value", 2), "NaN counts as missing")
	assert.False(t, tbl.IsMissing("value", 0))
	assert.Equal(t, 2, tbl.MissingCount("value"))
	assert.Equal(t, map[string]int{"value": 2, "name": 1}, tbl.MissingCounts())
}

func TestTable_NumericValues(t *testing.T) {
	tbl, err := New(
		Column{Name: "value", Type: TypeFloat64, Values: []interface{}{1.0, nil, math.NaN(), 4.0}},
		Column{Name: "name", Type: TypeString, Values: []interface{}{"a", "b", "c", "d"}},
	)
	require.NoError(t, err)

	vals, ok := tbl.NumericValues("value")
	require.True(t, ok)
	assert.Equal(t, []float64{1.0, 4.0}, vals, "absent cells are skipped")

	_, ok = tbl.NumericValues("name")
	assert.False(t, ok, "text columns have no numeric view")
}

func TestTable_Select(t *testing.T) {
	tbl := sampleTable(t)

	sub, err := tbl.Select([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.NumRows())
	assert.Equal(t, int64(3), sub.Value("id", 0))
	assert.Equal(t, int64(1), sub.Value("id", 1))

	// Original is untouched
	assert.Equal(t, 3, tbl.NumRows())

	_, err = tbl.Select([]int{5})
	assert.Error(t, err)
}

func TestTable_WithValues(t *testing.T) {
	tbl := sampleTable(t)

	updated, err := tbl.WithValues("value", []interface{}{1.5, 2.5, 3.5})
	require.NoError(t, err)
	assert.Equal(t, 2.5, updated.Value("value", 1))
	assert.Nil(t, tbl.Value("value", 1), "input table is never mutated")

	_, err = tbl.WithValues("unknown", []interface{}{1, 2, 3})
	assert.Error(t, err)

	_, err = tbl.WithValues("value", []interface{}{1.0})
	assert.Error(t, err)
}

func TestTable_RowKey(t *testing.T) {
	tbl, err := New(
		Column{Name: "a", Type: TypeFloat64, Values: []interface{}{1.0, 1.0, nil, math.NaN()}},
		Column{Name: "b", Type: TypeString, Values: []interface{}{"x", "x", "y", "y"}},
	)
	require.NoError(t, err)

	k0, err := tbl.RowKey(0)
	require.NoError(t, err)
	k1, err := tbl.RowKey(1)
	require.NoError(t, err)
	k2, err := tbl.RowKey(2)
	require.NoError(t, err)
	k3, err := tbl.RowKey(3)
	require.NoError(t, err)

	assert.Equal(t, k0, k1, "identical rows share a key")
	assert.NotEqual(t, k0, k2)
	assert.Equal(t, k2, k3, "nil and NaN absences coincide")
}

func TestAsFloat(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want float64
		ok   bool
	}{
		{"float64", 2.5, 2.5, true},
		{"int64", int64(3), 3.0, true},
		{"int", 4, 4.0, true},
		{"nil", nil, 0, false},
		{"NaN", math.NaN(), 0, false},
		{"string", "5", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AsFloat(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

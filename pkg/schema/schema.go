// Package schema provides declarative dataset contracts for scrub.
// A Schema lists the columns a Table must carry and the exact type each
// present column must have. Schemas are supplied by the caller; the
// pipeline never infers them.
package schema

import (
	"fmt"
	"sort"
	"time"

	"github.com/scrubdata/scrub/pkg/errors"
	"github.com/scrubdata/scrub/pkg/table"
)

// Schema declares the required columns and expected column types of a
// dataset. It is constructed once per pipeline configuration and is
// immutable thereafter.
type Schema struct {
	// Name identifies the schema (e.g., dataset or table name)
	Name string `yaml:"name" json:"name"`

	// Version tracks schema revisions
	Version string `yaml:"version" json:"version"`

	// CreatedAt records when the schema was defined
	CreatedAt time.Time `yaml:"created_at,omitempty" json:"created_at,omitempty"`

	// RequiredColumns lists columns that must be present in a valid table.
	// It need not be a subset of ColumnTypes keys.
	RequiredColumns []string `yaml:"required_columns" json:"required_columns"`

	// ColumnTypes maps column names to exact type tags (e.g. "int64",
	// "float64", "string", "category"). A declared column is only checked
	// when it is present in the validated table.
	ColumnTypes map[string]string `yaml:"column_types" json:"column_types"`

	// Metadata carries free-form schema annotations
	Metadata map[string]interface{} `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// New creates a Schema with the given identity.
func New(name, version string) *Schema {
	return &Schema{
		Name:        name,
		Version:     version,
		CreatedAt:   time.Now(),
		ColumnTypes: make(map[string]string),
	}
}

// Validate checks a table against the schema. Required-column presence
// is checked first, then declared types for columns present in the
// table. The first failing check aborts validation; checks are not
// accumulated into a combined report.
//
// Unlike the processing pipeline, validation failures are returned as
// errors to the immediate caller rather than converted to a failed
// result, since a schema mismatch is a caller-configuration problem.
func (s *Schema) Validate(t *table.Table) (bool, error) {
	var missing []string
	for _, name := range s.RequiredColumns {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return false, errors.Newf(errors.ErrorTypeValidation,
			"Missing required columns: %v", missing)
	}

	// Check declared types in a deterministic order
	declared := make([]string, 0, len(s.ColumnTypes))
	for name := range s.ColumnTypes {
		declared = append(declared, name)
	}
	sort.Strings(declared)

	for _, name := range declared {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		expected := s.ColumnTypes[name]
		if string(col.Type) != expected {
			return false, errors.Newf(errors.ErrorTypeValidation,
				"Column '%s' has type %s, expected %s", name, col.Type, expected)
		}
	}

	return true, nil
}

// String implements fmt.Stringer.
func (s *Schema) String() string {
	return fmt.Sprintf("Schema(name=%s, version=%s, columns=%d)",
		s.Name, s.Version, len(s.RequiredColumns))
}

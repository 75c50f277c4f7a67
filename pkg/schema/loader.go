package schema

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scrubdata/scrub/pkg/errors"
)

// LoadFile reads a Schema from a YAML file. Schemas are always supplied
// externally; this is the file-based supply channel used by the CLI.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is controlled by caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read schema file")
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse schema YAML")
	}
	if s.ColumnTypes == nil {
		s.ColumnTypes = make(map[string]string)
	}
	return &s, nil
}

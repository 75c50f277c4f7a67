// Package tableio loads and stores tables as CSV files. It handles
// header rows, missing-value tokens, per-column type detection for
// loading, and transparent gzip compression for files with a .gz
// suffix.
//
// Type detection here is a loader concern only: it decides how cells
// are parsed into a table. Pipeline schemas are always supplied by the
// caller and are never derived from loaded data.
package tableio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/scrubdata/scrub/pkg/errors"
	"github.com/scrubdata/scrub/pkg/table"
)

// missingTokens are the cell spellings treated as absent values on load.
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
}

func isMissingToken(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// ReadFile loads a CSV file into a Table. The first row is the header.
// Files ending in .gz are decompressed while reading.
func ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is controlled by caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open CSV file")
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open gzip stream")
		}
		defer gz.Close()
		reader = gz
	}

	return Read(reader)
}

// Read loads CSV data from a reader into a Table.
func Read(r io.Reader) (*table.Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to parse CSV")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrorTypeData, "CSV input has no header row")
	}

	headers := records[0]
	rows := records[1:]

	columns := make([]table.Column, len(headers))
	for i, name := range headers {
		cells := make([]string, len(rows))
		for r, row := range rows {
			if i >= len(row) {
				return nil, errors.Newf(errors.ErrorTypeData,
					"row %d has %d fields, expected %d", r+1, len(row), len(headers))
			}
			cells[r] = row[i]
		}
		columns[i] = buildColumn(name, cells)
	}

	return table.New(columns...)
}

// buildColumn detects the narrowest type that fits every present cell
// and parses the values accordingly. Detection order: int64, float64,
// string.
func buildColumn(name string, cells []string) table.Column {
	allInt := true
	allFloat := true
	present := 0

	for _, cell := range cells {
		if isMissingToken(cell) {
			continue
		}
		present++
		trimmed := strings.TrimSpace(cell)
		if _, err := strconv.ParseInt(trimmed, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			allFloat = false
		}
	}

	colType := table.TypeString
	if present > 0 && allInt {
		colType = table.TypeInt64
	} else if present > 0 && allFloat {
		colType = table.TypeFloat64
	}

	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		if isMissingToken(cell) {
			values[i] = nil
			continue
		}
		trimmed := strings.TrimSpace(cell)
		switch colType {
		case table.TypeInt64:
			n, _ := strconv.ParseInt(trimmed, 10, 64)
			values[i] = n
		case table.TypeFloat64:
			f, _ := strconv.ParseFloat(trimmed, 64)
			values[i] = f
		default:
			values[i] = cell
		}
	}

	return table.Column{Name: name, Type: colType, Values: values}
}

// WriteFile stores a Table as a CSV file with a header row. Files
// ending in .gz are compressed while writing.
func WriteFile(path string, t *table.Table) error {
	f, err := os.Create(path) //nolint:gosec // G304: path is controlled by caller
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create CSV file")
	}

	var writer io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		writer = gz
	}

	if err := Write(writer, t); err != nil {
		_ = f.Close()
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			_ = f.Close()
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush gzip stream")
		}
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to close CSV file")
	}
	return nil
}

// Write stores CSV data, header first, to a writer.
func Write(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.ColumnNames()); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write CSV header")
	}

	names := t.ColumnNames()
	row := make([]string, len(names))
	for r := 0; r < t.NumRows(); r++ {
		for i, name := range names {
			row[i] = formatCell(t.Value(name, r))
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to write CSV row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush CSV output")
	}
	return nil
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		if math.IsNaN(float64(x)) {
			return ""
		}
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

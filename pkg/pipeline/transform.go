package pipeline

import (
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/scrubdata/scrub/pkg/config"
	"github.com/scrubdata/scrub/pkg/errors"
	"github.com/scrubdata/scrub/pkg/metrics"
	"github.com/scrubdata/scrub/pkg/table"
)

// Transformation is a single table-to-table cleaning step. Transformations
// never mutate their input; they return either the input unchanged or a
// new Table. They are applied sequentially in the order the pipeline
// holds them, and each one can be unit tested in isolation.
type Transformation interface {
	// Name identifies the transformation in logs and metrics
	Name() string
	// Apply runs the transformation and returns the resulting table
	Apply(t *table.Table) (*table.Table, error)
}

// Dedup removes rows that are exact duplicates of an earlier row, all
// columns compared, keeping the first occurrence. Row order among kept
// rows is preserved.
type Dedup struct {
	logger *zap.Logger
}

// NewDedup creates a deduplication transformation.
func NewDedup(logger *zap.Logger) *Dedup {
	return &Dedup{logger: logger}
}

// Name implements Transformation.
func (d *Dedup) Name() string { return "dedup" }

// Apply implements Transformation.
func (d *Dedup) Apply(t *table.Table) (*table.Table, error) {
	seen := make(map[string]struct{}, t.NumRows())
	keep := make([]int, 0, t.NumRows())

	for row := 0; row < t.NumRows(); row++ {
		key, err := t.RowKey(row)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, row)
	}

	if len(keep) == t.NumRows() {
		return t, nil
	}

	removed := t.NumRows() - len(keep)
	d.logger.Info("removed duplicate rows", zap.Int("removed", removed))
	metrics.RowsDropped.WithLabelValues("dedup").Add(float64(removed))

	return t.Select(keep)
}

// OutlierFilter removes rows holding statistical outliers in any numeric
// column, using the interquartile-range rule. Quartile bounds are
// computed once per column from the pre-filter table, then applied
// jointly; they are not recomputed as rows are removed.
type OutlierFilter struct {
	logger *zap.Logger
}

// NewOutlierFilter creates an IQR outlier removal transformation.
func NewOutlierFilter(logger *zap.Logger) *OutlierFilter {
	return &OutlierFilter{logger: logger}
}

// Name implements Transformation.
func (f *OutlierFilter) Name() string { return "outliers" }

type iqrBounds struct {
	lower float64
	upper float64
}

// Apply implements Transformation.
func (f *OutlierFilter) Apply(t *table.Table) (*table.Table, error) {
	bounds := make(map[string]iqrBounds)
	for _, col := range t.Columns() {
		if !col.Type.Numeric() {
			continue
		}
		values, _ := t.NumericValues(col.Name)
		// Quartile bounds need at least four observations
		if len(values) < 4 {
			continue
		}
		q, err := stats.Quartile(values)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData,
				"failed to compute quartiles for column "+col.Name)
		}
		iqr := q.Q3 - q.Q1
		bounds[col.Name] = iqrBounds{
			lower: q.Q1 - 1.5*iqr,
			upper: q.Q3 + 1.5*iqr,
		}
	}

	if len(bounds) == 0 {
		return t, nil
	}

	keep := make([]int, 0, t.NumRows())
	for row := 0; row < t.NumRows(); row++ {
		outlier := false
		for name, b := range bounds {
			// Absent cells are never outliers
			v, ok := table.AsFloat(t.Value(name, row))
			if !ok {
				continue
			}
			if v < b.lower || v > b.upper {
				outlier = true
				break
			}
		}
		if !outlier {
			keep = append(keep, row)
		}
	}

	if len(keep) == t.NumRows() {
		return t, nil
	}

	removed := t.NumRows() - len(keep)
	f.logger.Info("removed outlier rows", zap.Int("removed", removed))
	metrics.RowsDropped.WithLabelValues("outliers").Add(float64(removed))

	return t.Select(keep)
}

// Imputer handles missing values according to the configured strategy.
// Mean and median apply only to numeric columns; non-numeric columns
// retain their values, including any absences, under these strategies.
// Drop applies uniformly to all columns. An unrecognized strategy emits
// a warning and falls back to mean.
type Imputer struct {
	strategy config.Strategy
	logger   *zap.Logger
}

// NewImputer creates a missing-value handling transformation.
func NewImputer(strategy config.Strategy, logger *zap.Logger) *Imputer {
	return &Imputer{strategy: strategy, logger: logger}
}

// Name implements Transformation.
func (im *Imputer) Name() string { return "missing" }

// Apply implements Transformation.
func (im *Imputer) Apply(t *table.Table) (*table.Table, error) {
	strategy, known := im.strategy.Resolve()
	if !known {
		im.logger.Warn("unknown missing value strategy, falling back to mean",
			zap.String("strategy", string(im.strategy)))
	}

	switch strategy {
	case config.StrategyDrop:
		return im.dropRows(t)
	case config.StrategyMedian:
		return im.fillNumeric(t, strategy, stats.Median)
	default:
		return im.fillNumeric(t, config.StrategyMean, stats.Mean)
	}
}

// dropRows removes every row containing an absent value in any column.
func (im *Imputer) dropRows(t *table.Table) (*table.Table, error) {
	keep := make([]int, 0, t.NumRows())
	for row := 0; row < t.NumRows(); row++ {
		complete := true
		for _, name := range t.ColumnNames() {
			if t.IsMissing(name, row) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, row)
		}
	}

	if len(keep) == t.NumRows() {
		return t, nil
	}

	removed := t.NumRows() - len(keep)
	im.logger.Info("dropped rows with missing values", zap.Int("removed", removed))
	metrics.RowsDropped.WithLabelValues("missing").Add(float64(removed))

	return t.Select(keep)
}

// fillNumeric replaces absent cells in numeric columns with the value
// computed by fill over the column's present values.
func (im *Imputer) fillNumeric(t *table.Table, strategy config.Strategy, fill func(stats.Float64Data) (float64, error)) (*table.Table, error) {
	out := t
	for _, col := range t.Columns() {
		if !col.Type.Numeric() {
			continue
		}
		missing := t.MissingCount(col.Name)
		if missing == 0 {
			continue
		}
		present, _ := t.NumericValues(col.Name)
		if len(present) == 0 {
			// No present values to impute from; the column stays absent
			continue
		}

		value, err := fill(present)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData,
				"failed to impute column "+col.Name)
		}

		current, _ := out.Column(col.Name)
		values := make([]interface{}, len(current.Values))
		for i, v := range current.Values {
			if table.CellMissing(v) {
				values[i] = value
			} else {
				values[i] = v
			}
		}

		out, err = out.WithValues(col.Name, values)
		if err != nil {
			return nil, err
		}

		im.logger.Debug("imputed missing values",
			zap.String("column", col.Name),
			zap.String("strategy", string(strategy)),
			zap.Int("cells", missing),
			zap.Float64("value", value))
		metrics.CellsImputed.WithLabelValues(string(strategy)).Add(float64(missing))
	}
	return out, nil
}

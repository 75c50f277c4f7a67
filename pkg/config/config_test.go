package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrubdata/scrub/pkg/errors"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, StrategyMean, cfg.MissingValueStrategy)
	assert.True(t, cfg.ValidateSchema)
	assert.False(t, cfg.AllowUnknownColumns)
	assert.Equal(t, 1000, cfg.BatchSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestParseStrategy(t *testing.T) {
	assert.Equal(t, StrategyMean, ParseStrategy(" MEAN "))
	assert.Equal(t, StrategyMedian, ParseStrategy("median"))
	assert.Equal(t, StrategyDrop, ParseStrategy("Drop"))
	assert.Equal(t, Strategy("bogus"), ParseStrategy("bogus"), "unknown values are preserved")
}

func TestStrategy_Resolve(t *testing.T) {
	t.Run("known strategies resolve to themselves", func(t *testing.T) {
		for _, s := range []Strategy{StrategyMean, StrategyMedian, StrategyDrop} {
			resolved, known := s.Resolve()
			assert.True(t, known)
			assert.Equal(t, s, resolved)
		}
	})

	t.Run("unknown strategy falls back to mean", func(t *testing.T) {
		resolved, known := Strategy("bogus").Resolve()
		assert.False(t, known)
		assert.Equal(t, StrategyMean, resolved)
	})
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.BatchSize = 0
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.Workers = -1
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.LogLevel = ""
	assert.Error(t, cfg.Validate())

	// An unknown strategy is accepted at construction time
	cfg = NewDefaultConfig()
	cfg.MissingValueStrategy = ParseStrategy("bogus")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("SCRUB_TEST_STRATEGY", "median")

	content := `missing_value_strategy: ${SCRUB_TEST_STRATEGY}
validate_schema: false
batch_size: 250
workers: 2
log_level: debug
`
	path := filepath.Join(t.TempDir(), "scrub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StrategyMedian, cfg.MissingValueStrategy)
	assert.False(t, cfg.ValidateSchema)
	assert.Equal(t, 250, cfg.BatchSize)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	content := "batch_size: 50\n"
	path := filepath.Join(t.TempDir(), "scrub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, StrategyMean, cfg.MissingValueStrategy)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_NormalizesStrategy(t *testing.T) {
	content := "missing_value_strategy: \" MEDIAN \"\n"
	path := filepath.Join(t.TempDir(), "scrub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StrategyMedian, cfg.MissingValueStrategy)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scrub.yaml")
		require.NoError(t, os.WriteFile(path, []byte("batch_size: [oops\n"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	})
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrub.yaml")

	original := NewDefaultConfig()
	original.MissingValueStrategy = StrategyDrop
	original.AllowUnknownColumns = true
	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SCRUB_MISSING_STRATEGY", "drop")
	t.Setenv("SCRUB_VALIDATE_SCHEMA", "false")
	t.Setenv("SCRUB_BATCH_SIZE", "500")
	t.Setenv("SCRUB_LOG_LEVEL", "warn")

	cfg := FromEnv()

	assert.Equal(t, StrategyDrop, cfg.MissingValueStrategy)
	assert.False(t, cfg.ValidateSchema)
	assert.Equal(t, 500, cfg.BatchSize)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()
	assert.Equal(t, NewDefaultConfig().MissingValueStrategy, cfg.MissingValueStrategy)
	assert.Equal(t, NewDefaultConfig().BatchSize, cfg.BatchSize)
}

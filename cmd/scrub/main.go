package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scrubdata/scrub/pkg/config"
	"github.com/scrubdata/scrub/pkg/errors"
	"github.com/scrubdata/scrub/pkg/logger"
	"github.com/scrubdata/scrub/pkg/pipeline"
	"github.com/scrubdata/scrub/pkg/schema"
	"github.com/scrubdata/scrub/pkg/tableio"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	root := &cobra.Command{
		Use:   "scrub",
		Short: "scrub - tabular dataset cleaning and validation",
		Long: `scrub cleans and validates tabular datasets before downstream analysis.
It removes duplicate rows, strips statistical outliers, handles missing values
according to a configurable strategy, and checks the result against a declared schema.`,
	}

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scrub v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// Main process command
	var inputFile, outputFile, configFile, schemaFile string
	var strategy, logLevel string

	processCmd := &cobra.Command{
		Use:   "process",
		Short: "Clean and validate a dataset",
		Long: `Clean a CSV dataset: remove duplicates, strip IQR outliers, and handle
missing values. Input and output files ending in .gz are read and written
compressed.

Example:
  scrub process --input data.csv --output cleaned.csv --schema schema.yaml --strategy median`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(inputFile, outputFile, configFile, schemaFile, strategy, logLevel)
		},
	}

	processCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Path to input CSV file (required)")
	_ = processCmd.MarkFlagRequired("input")

	processCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Path to write the cleaned CSV file (optional)")
	processCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML configuration file (optional; environment variables used otherwise)")
	processCmd.Flags().StringVar(&schemaFile, "schema", "", "Path to YAML schema file for validation (optional)")
	processCmd.Flags().StringVar(&strategy, "strategy", "", "Missing value strategy override (mean, median, drop)")
	processCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	root.AddCommand(processCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: YAML file when given,
// environment variables otherwise, then command line overrides.
func loadConfig(configFile, strategy, logLevel string) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("configuration error: %s", errors.Message(err))
		}
		cfg = loaded
	} else {
		cfg = config.FromEnv()
	}

	if strategy != "" {
		cfg.MissingValueStrategy = config.ParseStrategy(strategy)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runProcess executes the cleaning pipeline for a single dataset.
func runProcess(inputFile, outputFile, configFile, schemaFile, strategy, logLevel string) error {
	cfg, err := loadConfig(configFile, strategy, logLevel)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.FromConfig(cfg)); err != nil {
		return fmt.Errorf("logger error: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.With(
		zap.String("component", "scrub-cli"),
		zap.String("input", inputFile),
	)

	input, err := tableio.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	log.Info("loaded dataset",
		zap.Int("rows", input.NumRows()),
		zap.Int("columns", input.NumColumns()))

	// Schema validation happens around processing, as configured; it is
	// a caller-configuration concern, so mismatches abort the run.
	var declared *schema.Schema
	if schemaFile != "" {
		declared, err = schema.LoadFile(schemaFile)
		if err != nil {
			return fmt.Errorf("schema error: %w", err)
		}
		if cfg.ValidateSchema {
			if _, err := declared.Validate(input); err != nil {
				return fmt.Errorf("schema validation failed: %s", errors.Message(err))
			}
			log.Info("input schema validated", zap.String("schema", declared.Name))
		}
	}

	ctx := context.WithValue(context.Background(), logger.DatasetKey, inputFile)

	processor := pipeline.NewProcessor(cfg)
	result := processor.Process(ctx, input)

	if !result.Success {
		log.Error("processing failed", zap.Any("error", result.Stats["error"]))
		return fmt.Errorf("processing failed: %v", result.Stats["error"])
	}

	if declared != nil && cfg.ValidateSchema {
		if _, err := declared.Validate(result.Data); err != nil {
			return fmt.Errorf("output schema validation failed: %s", errors.Message(err))
		}
	}

	if outputFile != "" {
		if err := tableio.WriteFile(outputFile, result.Data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		log.Info("wrote cleaned dataset",
			zap.String("output", outputFile),
			zap.Int("rows", result.Data.NumRows()))
	}

	summary, err := result.SummaryJSON()
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	fmt.Println(string(summary))

	stats := processor.Stats()
	log.Info("processing completed",
		zap.Int64("total_processed", stats.TotalProcessed),
		zap.Float64("uptime_seconds", stats.UptimeSeconds),
		zap.Float64("average_throughput", stats.AverageThroughput))

	return nil
}

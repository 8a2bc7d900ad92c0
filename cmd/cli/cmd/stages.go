// Package cmd - pipeline stage commands
package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"retail-etl/core/clean"
	"retail-etl/core/datamart"
	"retail-etl/core/ingest"
	"retail-etl/core/quality"
	"retail-etl/core/table"
	"retail-etl/core/transform"
	"retail-etl/db/warehouse"
	"retail-etl/internal/config"
)

var datasets = []string{"clientes", "productos", "ventas"}

func validDataset(name string) bool {
	for _, ds := range datasets {
		if ds == name {
			return true
		}
	}
	return false
}

// csvOptions builds table options from explicit flags, falling back to the
// configured defaults.
func csvOptions(sep, enc string) table.Options {
	cfg := config.Get()
	if sep == "" {
		sep = cfg.CSV.Separator
	}
	if enc == "" {
		enc = cfg.CSV.Encoding
	}
	opts := table.DefaultOptions()
	if sep != "" {
		opts.Sep = []rune(sep)[0]
	}
	opts.Encoding = enc
	return opts
}

// ingestCmd copies the source extracts into the raw zone
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Copy source extracts into the raw zone",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		return ingest.Run(cfg.Paths.SeedDir, cfg.Paths.RawDir)
	},
}

// diagnoseCmd profiles a CSV for quality issues
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose {clientes|productos|ventas} [csv]",
	Short: "Profile a CSV for completeness, validity and duplicates",
	Long: `Compute per-column completeness, validity and duplicate counts for a
dataset, print the console report, and write CSV and Markdown artifacts
into the reports directory.

The CSV path defaults to the dataset's file in the source directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := args[0]
		if !validDataset(ds) {
			return fmt.Errorf("unknown dataset: %s", ds)
		}
		cfg := config.Get()
		csvPath := filepath.Join(cfg.Paths.SeedDir, ds+".csv")
		if len(args) > 1 {
			csvPath = args[1]
		}
		return quality.Diagnose(ds, csvPath, cfg.Paths.ReportsDir, csvOptions("", ""))
	},
}

var (
	cleanIn  string
	cleanOut string
	cleanSep string
	cleanEnc string
)

// cleanCmd normalizes and deduplicates a raw extract
var cleanCmd = &cobra.Command{
	Use:   "clean {clientes|productos|ventas}",
	Short: "Clean a raw extract into the processed zone",
	Long: `Normalize headers, coerce types, apply domain rules and deduplicate by
primary key, writing the cleaned table into the processed zone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := args[0]
		if !validDataset(ds) {
			return fmt.Errorf("unknown dataset: %s", ds)
		}
		cfg := config.Get()
		in := cleanIn
		if in == "" {
			in = filepath.Join(cfg.Paths.RawDir, ds+".csv")
		}
		out := cleanOut
		if out == "" {
			out = filepath.Join(cfg.Paths.ProcessedDir, ds+"_limpio.csv")
		}
		return clean.Run(clean.Dataset(ds), in, out, csvOptions(cleanSep, cleanEnc))
	},
}

// transformCmd builds the curated star schema
var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Build the star-schema curated layer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		return transform.Run(cfg.Paths.ProcessedDir, cfg.Paths.CuratedDir, csvOptions("", ""))
	},
}

// datamartCmd aggregates the reporting marts
var datamartCmd = &cobra.Command{
	Use:   "datamart",
	Short: "Aggregate the curated tables into reporting marts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		return datamart.Run(cfg.Paths.CuratedDir, cfg.Paths.DatamartDir, csvOptions("", ""))
	},
}

// loadCmd loads the curated tables into the warehouse
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the curated tables into the Postgres warehouse",
	Long: `Execute the DDL script against the warehouse, then append each curated
CSV into its table. Connection settings come from the PGHOST, PGPORT,
PGUSER, PGPASSWORD and PGDATABASE environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		return warehouse.Run(context.Background(), cfg.Warehouse, cfg.Paths.CuratedDir, csvOptions("", ""))
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanIn, "in", "", "input CSV path (default: raw zone)")
	cleanCmd.Flags().StringVar(&cleanOut, "out", "", "output CSV path (default: processed zone)")
	cleanCmd.Flags().StringVar(&cleanSep, "sep", "", "field separator (default: configured separator)")
	cleanCmd.Flags().StringVar(&cleanEnc, "enc", "", "input encoding (default: configured encoding)")
}

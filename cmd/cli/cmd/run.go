// Package cmd - full pipeline command
package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"retail-etl/core/clean"
	"retail-etl/core/datamart"
	"retail-etl/core/ingest"
	"retail-etl/core/quality"
	"retail-etl/core/transform"
	"retail-etl/db/warehouse"
	"retail-etl/internal/config"
	"retail-etl/internal/logging"
)

var runLoad bool

// runCmd sequences the full pipeline
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline in order",
	Long: `Sequence ingest, diagnostics, cleaning, transformation and datamart
build, stopping at the first fatal error. With --load, the curated
tables are additionally loaded into the warehouse.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		opts := csvOptions("", "")
		runID := uuid.NewString()
		logging.Info("pipeline run started", zap.String("run_id", runID))

		if err := ingest.Run(cfg.Paths.SeedDir, cfg.Paths.RawDir); err != nil {
			return err
		}

		for _, ds := range datasets {
			raw := filepath.Join(cfg.Paths.RawDir, ds+".csv")
			if err := quality.Diagnose(ds, raw, cfg.Paths.ReportsDir, opts); err != nil {
				return err
			}
		}

		for _, ds := range datasets {
			in := filepath.Join(cfg.Paths.RawDir, ds+".csv")
			out := filepath.Join(cfg.Paths.ProcessedDir, ds+"_limpio.csv")
			if err := clean.Run(clean.Dataset(ds), in, out, opts); err != nil {
				return err
			}
		}

		if err := transform.Run(cfg.Paths.ProcessedDir, cfg.Paths.CuratedDir, opts); err != nil {
			return err
		}

		if err := datamart.Run(cfg.Paths.CuratedDir, cfg.Paths.DatamartDir, opts); err != nil {
			return err
		}

		if runLoad {
			if err := warehouse.Run(context.Background(), cfg.Warehouse, cfg.Paths.CuratedDir, opts); err != nil {
				return err
			}
		}

		logging.Info("pipeline run finished", zap.String("run_id", runID))
		fmt.Println("Pipeline completado")
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runLoad, "load", false, "also load the curated tables into the warehouse")
}

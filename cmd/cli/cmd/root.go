// Package cmd provides the CLI commands for retail-etl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"retail-etl/internal/config"
	"retail-etl/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "retail-etl",
	Short: "Batch ETL pipeline for retail sales data",
	Long: `retail-etl ingests raw customer, product and sales extracts, profiles
their quality, cleans and normalizes them, derives a star-schema curated
layer, loads it into a Postgres warehouse, and aggregates reporting marts.

Stages run in order: ingest, diagnose, clean, transform, datamart, load.

Examples:
  retail-etl ingest
  retail-etl diagnose ventas datalake/datos_crudos/ventas.csv
  retail-etl clean ventas --in datalake/datos_crudos/ventas.csv
  retail-etl run --load`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./retail-etl.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(datamartCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("retail-etl version 0.1.0")
	},
}

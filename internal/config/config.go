// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"retail-etl/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Paths contains the zone directory layout
	Paths PathsConfig `json:"paths"`

	// CSV contains CSV reading defaults
	CSV CSVConfig `json:"csv"`

	// Warehouse contains warehouse load configuration
	Warehouse WarehouseConfig `json:"warehouse"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PathsConfig contains the directory layout, anchored at the project root.
// Downstream stages assume upstream stages already populated their zone.
type PathsConfig struct {
	// SeedDir holds the original source extracts
	SeedDir string `json:"seed_dir"`

	// RawDir is the raw zone (untouched ingested copies)
	RawDir string `json:"raw_dir"`

	// ProcessedDir is the processed zone (cleaned tables)
	ProcessedDir string `json:"processed_dir"`

	// CuratedDir is the curated zone (star-schema tables)
	CuratedDir string `json:"curated_dir"`

	// DatamartDir holds the aggregated marts
	DatamartDir string `json:"datamart_dir"`

	// ReportsDir holds the quality report artifacts
	ReportsDir string `json:"reports_dir"`
}

// CSVConfig contains CSV reading defaults
type CSVConfig struct {
	// Separator is the field separator
	Separator string `json:"separator"`

	// Encoding is the input text encoding
	Encoding string `json:"encoding"`
}

// WarehouseConfig contains warehouse connection settings
type WarehouseConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`

	// SchemaFile is the DDL script executed verbatim before loading
	SchemaFile string `json:"schema_file"`
}

// URL assembles the connection string
func (w WarehouseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", w.User, w.Password, w.Host, w.Port, w.Database)
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Paths: PathsConfig{
			SeedDir:      "datos_origen",
			RawDir:       filepath.Join("datalake", "datos_crudos"),
			ProcessedDir: filepath.Join("datalake", "datos_procesados"),
			CuratedDir:   filepath.Join("datalake", "datos_curados"),
			DatamartDir:  "datamart",
			ReportsDir:   "reportes_datos_crudos",
		},
		CSV: CSVConfig{
			Separator: ",",
			Encoding:  "utf-8",
		},
		Warehouse: warehouseFromEnv(),
		Logging:   logging.DefaultConfig(),
	}
}

// warehouseFromEnv reads warehouse settings from the environment, loading a
// .env file first when one exists.
func warehouseFromEnv() WarehouseConfig {
	_ = godotenv.Load()
	return WarehouseConfig{
		Host:       envOr("PGHOST", "localhost"),
		Port:       envOr("PGPORT", "5432"),
		User:       envOr("PGUSER", "postgres"),
		Password:   envOr("PGPASSWORD", "admin"),
		Database:   envOr("PGDATABASE", "ventas_olap"),
		SchemaFile: filepath.Join("dw", "esquema.sql"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

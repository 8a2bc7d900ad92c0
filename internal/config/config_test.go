package config

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.CSV.Separator = ";"
	cfg.CSV.Encoding = "latin-1"
	cfg.Paths.SeedDir = "extractos"

	path := filepath.Join(t.TempDir(), "conf", "retail-etl.json")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.CSV.Separator != ";" || got.CSV.Encoding != "latin-1" {
		t.Errorf("CSV config not restored: %+v", got.CSV)
	}
	if got.Paths.SeedDir != "extractos" {
		t.Errorf("seed dir not restored: %q", got.Paths.SeedDir)
	}
	if got.Paths.DatamartDir != "datamart" {
		t.Errorf("untouched default lost: %q", got.Paths.DatamartDir)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Version != "1.0" || got.CSV.Separator != "," {
		t.Errorf("expected defaults, got %+v", got)
	}
}

func TestWarehouseURL(t *testing.T) {
	w := WarehouseConfig{Host: "db", Port: "5433", User: "u", Password: "p", Database: "ventas"}
	if got := w.URL(); got != "postgres://u:p@db:5433/ventas" {
		t.Errorf("unexpected URL %q", got)
	}
}

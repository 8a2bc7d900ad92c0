package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"retail-etl/internal/errors"
)

func writeSeed(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("writing seed %s: %v", name, err)
	}
}

func TestRunCopiesAllSources(t *testing.T) {
	seed := t.TempDir()
	raw := filepath.Join(t.TempDir(), "datos_crudos")

	contents := map[string]string{
		"clientes.csv":  "id_cliente,nombre\n1,Ana\n",
		"productos.csv": "id_producto,nombre_producto\n10,Teclado\n",
		"ventas.csv":    "id_venta,monto\n100,19.90\n",
	}
	for name, body := range contents {
		writeSeed(t, seed, name, body)
	}

	if err := Run(seed, raw); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for name, want := range contents {
		got, err := os.ReadFile(filepath.Join(raw, name))
		if err != nil {
			t.Fatalf("reading copy %s: %v", name, err)
		}
		if string(got) != want {
			t.Errorf("%s copy differs:\ngot  %q\nwant %q", name, got, want)
		}
	}
}

func TestRunAbortsOnFirstMissingSource(t *testing.T) {
	seed := t.TempDir()
	raw := filepath.Join(t.TempDir(), "datos_crudos")

	// clientes.csv deliberately absent
	writeSeed(t, seed, "productos.csv", "id_producto\n10\n")
	writeSeed(t, seed, "ventas.csv", "id_venta\n100\n")

	err := Run(seed, raw)
	if err == nil {
		t.Fatal("expected an error for the missing extract")
	}
	if !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}

	// nothing after the failure point was copied
	entries, readErr := os.ReadDir(raw)
	if readErr != nil {
		t.Fatalf("reading raw dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty raw zone, found %d entries", len(entries))
	}
}

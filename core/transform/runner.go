package transform

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"retail-etl/core/clean"
	"retail-etl/core/table"
	"retail-etl/internal/logging"
)

// Run reads the three cleaned CSVs, builds the star schema, and writes the
// four curated tables plus the quality summary.
func Run(processedDir, curatedDir string, opts table.Options) error {
	runID := uuid.NewString()

	clientes, err := readTyped(filepath.Join(processedDir, "clientes_limpio.csv"), opts, typeClientes)
	if err != nil {
		return err
	}
	productos, err := readTyped(filepath.Join(processedDir, "productos_limpio.csv"), opts, typeProductos)
	if err != nil {
		return err
	}
	ventas, err := readTyped(filepath.Join(processedDir, "ventas_limpio.csv"), opts, typeVentas)
	if err != nil {
		return err
	}

	star, summary, err := Build(clientes, productos, ventas)
	if err != nil {
		return err
	}

	outputs := []struct {
		name string
		t    *table.Table
	}{
		{"dim_cliente.csv", star.DimCliente},
		{"dim_producto.csv", star.DimProducto},
		{"dim_tiempo.csv", star.DimTiempo},
		{"hecho_ventas.csv", star.HechoVentas},
	}
	for _, out := range outputs {
		if err := table.WriteCSV(out.t, filepath.Join(curatedDir, out.name)); err != nil {
			return err
		}
	}

	if err := table.WriteCSV(summary.Table(), filepath.Join(processedDir, "quality_report.csv")); err != nil {
		return err
	}

	logging.Info("curated layer built",
		zap.String("run_id", runID),
		zap.Int("fact_rows", summary.Rows),
		zap.Int("fk_cliente_sin_dim", summary.FKClienteSinDim),
		zap.Int("fk_producto_sin_dim", summary.FKProductoSinDim),
		zap.Int("fk_tiempo_sin_dim", summary.FKTiempoSinDim))
	if n := summary.FKClienteSinDim + summary.FKProductoSinDim + summary.FKTiempoSinDim; n > 0 {
		logging.Warn("fact rows reference missing dimension keys", zap.Int("rows", n))
	}

	fmt.Println("Transformaciones listas")
	resolved, err := filepath.Abs(curatedDir)
	if err != nil {
		resolved = curatedDir
	}
	fmt.Printf("Curated: %s\n", resolved)
	return nil
}

// Table renders the summary as a single-row table
func (s *QualitySummary) Table() *table.Table {
	t := table.New("rows", "null_cliente", "null_producto", "total_amount",
		"fk_cliente_sin_dim", "fk_producto_sin_dim", "fk_tiempo_sin_dim")
	_ = t.Append([]table.Value{
		table.Int(int64(s.Rows)),
		table.Int(int64(s.NullCliente)),
		table.Int(int64(s.NullProducto)),
		table.Dec(s.TotalAmount),
		table.Int(int64(s.FKClienteSinDim)),
		table.Int(int64(s.FKProductoSinDim)),
		table.Int(int64(s.FKTiempoSinDim)),
	})
	return t
}

func readTyped(path string, opts table.Options, typer func(*table.Table)) (*table.Table, error) {
	t, err := table.ReadCSV(path, opts)
	if err != nil {
		return nil, err
	}
	typer(t)
	return t, nil
}

func typeClientes(t *table.Table) {
	clean.CoerceInt(t, "id_cliente")
	clean.CoerceInt(t, "edad")
}

func typeProductos(t *table.Table) {
	clean.CoerceInt(t, "id_producto")
}

func typeVentas(t *table.Table) {
	for _, c := range []string{"id_venta", "id_producto", "id_sucursal", "cantidad"} {
		clean.CoerceInt(t, c)
	}
	t.Each(func(r int) {
		if s, ok := t.Value(r, "monto").Str(); ok {
			if d, err := decimal.NewFromString(s); err == nil {
				t.SetValue(r, "monto", table.Dec(d))
			} else {
				t.SetValue(r, "monto", table.Null())
			}
		}
		if s, ok := t.Value(r, "fecha").Str(); ok {
			if d, err := time.Parse("2006-01-02", s); err == nil {
				t.SetValue(r, "fecha", table.Date(d))
			} else {
				t.SetValue(r, "fecha", table.Null())
			}
		}
	})
}

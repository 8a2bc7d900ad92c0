package datamart

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"retail-etl/core/clean"
	"retail-etl/core/table"
	"retail-etl/internal/logging"
)

// Run reads the curated fact and dimensions, builds the two marts, and
// writes them into datamartDir.
func Run(curatedDir, datamartDir string, opts table.Options) error {
	fact, err := table.ReadCSV(filepath.Join(curatedDir, "hecho_ventas.csv"), opts)
	if err != nil {
		return err
	}
	typeFact(fact)

	dimProducto, err := table.ReadCSV(filepath.Join(curatedDir, "dim_producto.csv"), opts)
	if err != nil {
		return err
	}
	clean.CoerceInt(dimProducto, "id_producto")

	dimTiempo, err := table.ReadCSV(filepath.Join(curatedDir, "dim_tiempo.csv"), opts)
	if err != nil {
		return err
	}
	typeDimTiempo(dimTiempo)

	monthly := Monthly(fact, dimProducto, dimTiempo)
	annual := Annual(fact, dimProducto, dimTiempo)

	if err := table.WriteCSV(monthly, filepath.Join(datamartDir, "mart_ventas_mes_categoria.csv")); err != nil {
		return err
	}
	if err := table.WriteCSV(annual, filepath.Join(datamartDir, "mart_ventas_anio_categoria.csv")); err != nil {
		return err
	}

	logging.Info("data marts built",
		zap.Int("monthly_rows", monthly.NumRows()),
		zap.Int("annual_rows", annual.NumRows()))

	resolved, err := filepath.Abs(datamartDir)
	if err != nil {
		resolved = datamartDir
	}
	fmt.Println("Data Marts generados en", resolved)
	return nil
}

func typeFact(t *table.Table) {
	for _, c := range []string{"id_venta", "id_cliente", "id_producto", "id_tiempo", "cantidad"} {
		clean.CoerceInt(t, c)
	}
	t.Each(func(r int) {
		if s, ok := t.Value(r, "total").Str(); ok {
			if d, err := decimal.NewFromString(s); err == nil {
				t.SetValue(r, "total", table.Dec(d))
			} else {
				t.SetValue(r, "total", table.Null())
			}
		}
	})
}

func typeDimTiempo(t *table.Table) {
	for _, c := range []string{"id_tiempo", "anio", "mes", "dia"} {
		clean.CoerceInt(t, c)
	}
	t.Each(func(r int) {
		if s, ok := t.Value(r, "fecha").Str(); ok {
			if d, err := time.Parse("2006-01-02", s); err == nil {
				t.SetValue(r, "fecha", table.Date(d))
			}
		}
	})
}

package clean

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"retail-etl/core/table"
	"retail-etl/internal/errors"
	"retail-etl/internal/logging"
)

// Dataset names a cleanable extract
type Dataset string

const (
	// DatasetClientes is the customers extract
	DatasetClientes Dataset = "clientes"

	// DatasetProductos is the products extract
	DatasetProductos Dataset = "productos"

	// DatasetVentas is the sales extract
	DatasetVentas Dataset = "ventas"
)

// Result summarizes a cleaning pass
type Result struct {
	// Table is the cleaned dataset
	Table *table.Table

	// Key is the primary-key column used for deduplication
	Key string

	// RowsBefore and RowsAfter bracket the deduplication
	RowsBefore int
	RowsAfter  int

	// KeyNulls holds null counts for the reported key columns, in order.
	// KeyNullsLabel is the console label for the line; the customers and
	// products summaries phrase it differently, and the sales summary has
	// no key-nulls line at all.
	KeyNulls      []KeyNulls
	KeyNullsLabel string

	// DateValidity is the fraction of non-null dates right after date
	// cleaning, before deduplication, as a percentage. UnparseableDates
	// counts the null dates at that point. DateValidityDedup is the same
	// fraction after deduplication. Only set for ventas.
	DateValidity      *float64
	UnparseableDates  int
	DateValidityDedup *float64
}

// KeyNulls pairs a column with its null count
type KeyNulls struct {
	Column string
	Nulls  int
}

// Clientes cleans the customers extract: header normalization, nullable
// integer ids and ages, trimmed text, age bounds, keep-first dedup by
// id_cliente.
func Clientes(t *table.Table) *Result {
	t.NormalizeHeaders()
	clientesAliases.Apply(t)
	t.EnsureColumns(clientesColumns...)

	CoerceInt(t, "id_cliente")
	CoerceInt(t, "edad")
	for _, c := range []string{"nombre", "ubicacion", "categoria"} {
		coerceText(t, c)
	}

	// edad fuera de [0,120] se anula, la fila se conserva
	t.Each(func(r int) {
		if edad, ok := t.Value(r, "edad").Int64(); ok && (edad < 0 || edad > 120) {
			t.SetValue(r, "edad", table.Null())
		}
	})

	before, after := t.DedupByKey("id_cliente")
	return &Result{
		Table:      t,
		Key:        "id_cliente",
		RowsBefore: before,
		RowsAfter:  after,
		KeyNulls: []KeyNulls{
			{"id_cliente", t.NullCount("id_cliente")},
			{"nombre", t.NullCount("nombre")},
		},
		KeyNullsLabel: "Nulos en columnas clave",
	}
}

// Productos cleans the products extract
func Productos(t *table.Table) *Result {
	t.NormalizeHeaders()
	productosAliases.Apply(t)
	t.EnsureColumns(productosColumns...)

	CoerceInt(t, "id_producto")
	for _, c := range []string{"nombre_producto", "categoria", "proveedor"} {
		coerceText(t, c)
	}

	before, after := t.DedupByKey("id_producto")
	return &Result{
		Table:      t,
		Key:        "id_producto",
		RowsBefore: before,
		RowsAfter:  after,
		KeyNulls: []KeyNulls{
			{"id_producto", t.NullCount("id_producto")},
			{"nombre_producto", t.NullCount("nombre_producto")},
		},
		KeyNullsLabel: "Nulos clave",
	}
}

// Ventas cleans the sales extract: numeric ids and quantities, currency
// amounts, flexible date parsing with range bounds, non-negative rules,
// keep-first dedup by id_venta.
func Ventas(t *table.Table) *Result {
	t.NormalizeHeaders()
	t.EnsureColumns(ventasColumns...)

	for _, c := range []string{"id_venta", "id_producto", "id_sucursal", "cantidad"} {
		CoerceInt(t, c)
	}

	t.Each(func(r int) {
		v := t.Value(r, "monto")
		if v.IsNull() {
			return
		}
		s, ok := v.Str()
		if !ok {
			return
		}
		if d, ok := parseAmount(s); ok {
			t.SetValue(r, "monto", table.Dec(d))
		} else {
			t.SetValue(r, "monto", table.Null())
		}
	})

	lo, hi := dateBounds(time.Now())
	t.Each(func(r int) {
		v := t.Value(r, "fecha")
		if v.IsNull() {
			return
		}
		s, ok := v.Str()
		if !ok {
			return
		}
		d, ok := ParseDate(s)
		if !ok || !inDateRange(d, lo, hi) {
			t.SetValue(r, "fecha", table.Null())
			return
		}
		t.SetValue(r, "fecha", table.Date(d))
	})

	// diagnóstico rápido de fechas, antes de deduplicar
	unparseable := t.NullCount("fecha")
	validity := 0.0
	if n := t.NumRows(); n > 0 {
		validity = float64(n-unparseable) / float64(n) * 100
	}

	// cantidades y montos negativos se anulan, la fila se conserva
	t.Each(func(r int) {
		if q, ok := t.Value(r, "cantidad").Int64(); ok && q < 0 {
			t.SetValue(r, "cantidad", table.Null())
		}
		if m, ok := t.Value(r, "monto").Decimal(); ok && m.IsNegative() {
			t.SetValue(r, "monto", table.Null())
		}
	})

	before, after := t.DedupByKey("id_venta")

	validityDedup := 0.0
	if after > 0 {
		validityDedup = float64(after-t.NullCount("fecha")) / float64(after) * 100
	}
	return &Result{
		Table:             t,
		Key:               "id_venta",
		RowsBefore:        before,
		RowsAfter:         after,
		DateValidity:      &validity,
		UnparseableDates:  unparseable,
		DateValidityDedup: &validityDedup,
	}
}

// Run reads a raw CSV, cleans it, writes the processed CSV, and prints the
// console summary.
func Run(ds Dataset, inPath, outPath string, opts table.Options) error {
	t, err := table.ReadCSV(inPath, opts)
	if err != nil {
		return err
	}

	var res *Result
	switch ds {
	case DatasetClientes:
		res = Clientes(t)
	case DatasetProductos:
		res = Productos(t)
	case DatasetVentas:
		res = Ventas(t)
	default:
		return errors.Newf(errors.TypeInput, "unknown dataset: %s", ds)
	}

	if res.DateValidity != nil {
		fmt.Printf("Validez fecha tras limpieza: %.1f%%\n", *res.DateValidity)
		if res.UnparseableDates > 0 {
			fmt.Printf("Fechas no parseables (NaT): %d\n", res.UnparseableDates)
		}
	}
	fmt.Printf("Filas originales: %d | tras deduplicar por %s: %d\n", res.RowsBefore, res.Key, res.RowsAfter)
	if len(res.KeyNulls) > 0 {
		fmt.Printf("%s ->", res.KeyNullsLabel)
		for i, kn := range res.KeyNulls {
			if i > 0 {
				fmt.Printf(",")
			}
			fmt.Printf(" %s: %d", kn.Column, kn.Nulls)
		}
		fmt.Println()
	}
	if res.DateValidityDedup != nil {
		fmt.Printf("Validez fecha (no nulos): %.0f%%\n", *res.DateValidityDedup)
	}

	if err := table.WriteCSV(res.Table, outPath); err != nil {
		return err
	}
	resolved, err := filepath.Abs(outPath)
	if err != nil {
		resolved = outPath
	}
	fmt.Println("Guardado:", resolved)
	logging.Info("dataset cleaned",
		zap.String("dataset", string(ds)),
		zap.Int("rows_before", res.RowsBefore),
		zap.Int("rows_after", res.RowsAfter))
	return nil
}

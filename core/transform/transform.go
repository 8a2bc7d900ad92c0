// Package transform builds the star-schema curated layer from the cleaned
// tables.
package transform

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"retail-etl/core/table"
)

// Star holds the curated dimension and fact tables
type Star struct {
	DimCliente  *table.Table
	DimProducto *table.Table
	DimTiempo   *table.Table
	HechoVentas *table.Table
}

// QualitySummary is the lightweight run-level quality report persisted next
// to the processed tables. Foreign keys are counted, never enforced:
// offending fact rows are kept.
type QualitySummary struct {
	Rows         int
	NullCliente  int
	NullProducto int

	// TotalAmount is the raw sum of the sale amounts
	TotalAmount decimal.Decimal

	// FK*SinDim count non-null foreign keys with no matching dimension row
	FKClienteSinDim  int
	FKProductoSinDim int
	FKTiempoSinDim   int
}

// TimeKey derives the time-dimension surrogate key: an 8-digit integer
// encoding of the date (YYYYMMDD).
func TimeKey(t time.Time) int64 {
	return int64(t.Year())*10000 + int64(t.Month())*100 + int64(t.Day())
}

// Build derives the star schema. The sales branch id column is reinterpreted
// as the customer id, and the amount becomes the fact total.
func Build(clientes, productos, ventas *table.Table) (*Star, *QualitySummary, error) {
	clientes.Rename(map[string]string{"nombre": "nombre_cliente"})
	trimColumn(clientes, "nombre_cliente")
	trimColumn(productos, "nombre_producto")

	ventas.Rename(map[string]string{
		"id_sucursal": "id_cliente",
		"monto":       "total",
	})

	dimCliente, err := clientes.Select("id_cliente", "nombre_cliente", "edad", "ubicacion", "categoria")
	if err != nil {
		return nil, nil, err
	}
	dimCliente.DropDuplicateRows()

	dimProducto, err := productos.Select("id_producto", "nombre_producto", "categoria", "proveedor")
	if err != nil {
		return nil, nil, err
	}
	dimProducto.DropDuplicateRows()

	dimTiempo := buildDimTiempo(ventas)

	// el hecho deriva id_tiempo con el mismo formato YYYYMMDD que la
	// dimensión, por lo que ambas claves coinciden sin join explícito
	ventas.EnsureColumns("id_tiempo")
	ventas.Each(func(r int) {
		if d, ok := ventas.Value(r, "fecha").Time(); ok {
			ventas.SetValue(r, "id_tiempo", table.Int(TimeKey(d)))
		}
	})

	hechoVentas, err := ventas.Select("id_venta", "id_cliente", "id_producto", "id_tiempo", "cantidad", "total")
	if err != nil {
		return nil, nil, err
	}

	star := &Star{
		DimCliente:  dimCliente,
		DimProducto: dimProducto,
		DimTiempo:   dimTiempo,
		HechoVentas: hechoVentas,
	}
	return star, summarize(star), nil
}

func buildDimTiempo(ventas *table.Table) *table.Table {
	seen := make(map[int64]struct{})
	var dates []time.Time
	ventas.Each(func(r int) {
		d, ok := ventas.Value(r, "fecha").Time()
		if !ok {
			return
		}
		key := TimeKey(d)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		dates = append(dates, d)
	})

	dim := table.New("id_tiempo", "fecha", "anio", "mes", "dia")
	for _, d := range dates {
		_ = dim.Append([]table.Value{
			table.Int(TimeKey(d)),
			table.Date(d),
			table.Int(int64(d.Year())),
			table.Int(int64(d.Month())),
			table.Int(int64(d.Day())),
		})
	}
	dim.SortBy(table.SortSpec{Column: "fecha"})
	return dim
}

func summarize(star *Star) *QualitySummary {
	fact := star.HechoVentas
	sum := decimal.Zero
	fact.Each(func(r int) {
		if d, ok := fact.Value(r, "total").Decimal(); ok {
			sum = sum.Add(d)
		}
	})

	return &QualitySummary{
		Rows:             fact.NumRows(),
		NullCliente:      fact.NullCount("id_cliente"),
		NullProducto:     fact.NullCount("id_producto"),
		TotalAmount:      sum,
		FKClienteSinDim:  unmatched(fact, "id_cliente", star.DimCliente, "id_cliente"),
		FKProductoSinDim: unmatched(fact, "id_producto", star.DimProducto, "id_producto"),
		FKTiempoSinDim:   unmatched(fact, "id_tiempo", star.DimTiempo, "id_tiempo"),
	}
}

// unmatched counts non-null fact keys absent from the dimension
func unmatched(fact *table.Table, factCol string, dim *table.Table, dimCol string) int {
	keys := make(map[int64]struct{}, dim.NumRows())
	dim.Each(func(r int) {
		if k, ok := dim.Value(r, dimCol).Int64(); ok {
			keys[k] = struct{}{}
		}
	})

	n := 0
	fact.Each(func(r int) {
		k, ok := fact.Value(r, factCol).Int64()
		if !ok {
			return
		}
		if _, found := keys[k]; !found {
			n++
		}
	})
	return n
}

func trimColumn(t *table.Table, col string) {
	t.Each(func(r int) {
		if s, ok := t.Value(r, col).Str(); ok {
			t.SetValue(r, col, table.String(strings.TrimSpace(s)))
		}
	})
}

package clean

import (
	"testing"
	"time"

	"retail-etl/core/table"
)

func raw(cols []string, rows ...[]string) *table.Table {
	t := table.New(cols...)
	for _, r := range rows {
		vals := make([]table.Value, len(cols))
		for i := range cols {
			if i >= len(r) || r[i] == "" {
				vals[i] = table.Null()
				continue
			}
			vals[i] = table.String(r[i])
		}
		if err := t.Append(vals); err != nil {
			panic(err)
		}
	}
	return t
}

func TestClientesDedupKeepsFirstRow(t *testing.T) {
	in := raw(
		[]string{"id_cliente", "nombre", "edad", "ubicacion", "categoria"},
		[]string{"5", "Ana", "30", "Lima", "A"},
		[]string{"5", "Otra", "40", "Quito", "B"},
		[]string{"6", "Luis", "200", "Bogota", "A"},
	)
	res := Clientes(in)

	if res.RowsBefore != 3 || res.RowsAfter != 2 {
		t.Fatalf("expected dedup 3 -> 2, got %d -> %d", res.RowsBefore, res.RowsAfter)
	}
	if nombre, _ := res.Table.Value(0, "nombre").Str(); nombre != "Ana" {
		t.Errorf("expected first occurrence of id 5 kept, got nombre %q", nombre)
	}

	// edad 200 fuera de rango -> null; edad 30 se conserva
	if edad, ok := res.Table.Value(0, "edad").Int64(); !ok || edad != 30 {
		t.Errorf("expected edad 30 retained, got %v ok=%v", edad, ok)
	}
	if !res.Table.Value(1, "edad").IsNull() {
		t.Error("expected edad 200 to be nulled")
	}
}

func TestClientesPrimaryKeyUniqueAfterClean(t *testing.T) {
	in := raw(
		[]string{"customer_id", "customername"},
		[]string{"1", "Ana"},
		[]string{"2", "Luis"},
		[]string{"1", "Ana bis"},
		[]string{"", "sin id"},
		[]string{"", "tampoco"},
	)
	res := Clientes(in)

	seen := make(map[int64]int)
	res.Table.Each(func(r int) {
		if id, ok := res.Table.Value(r, "id_cliente").Int64(); ok {
			seen[id]++
		}
	})
	for id, n := range seen {
		if n > 1 {
			t.Errorf("id_cliente %d appears %d times after dedup", id, n)
		}
	}
	if res.RowsAfter != 4 {
		t.Errorf("expected 4 rows (2 ids + 2 null-key rows), got %d", res.RowsAfter)
	}
}

func TestClientesAliasAndMissingColumns(t *testing.T) {
	in := raw(
		[]string{" Customer_ID ", "CustomerName"},
		[]string{"9", "  Marta  "},
	)
	res := Clientes(in)

	for _, col := range clientesColumns {
		if !res.Table.HasColumn(col) {
			t.Errorf("missing canonical column %s", col)
		}
	}
	if id, ok := res.Table.Value(0, "id_cliente").Int64(); !ok || id != 9 {
		t.Errorf("expected aliased id 9, got %v ok=%v", id, ok)
	}
	if nombre, _ := res.Table.Value(0, "nombre").Str(); nombre != "Marta" {
		t.Errorf("expected trimmed nombre, got %q", nombre)
	}
	if !res.Table.Value(0, "edad").IsNull() {
		t.Error("expected created edad column to be null")
	}
}

func TestVentasCurrencyParsing(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"$1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"12,5", "12.5"},
		{"100", "100"},
		{"$ 2.000", "2000"},
	}
	for _, c := range cases {
		d, ok := parseAmount(c.in)
		if !ok {
			t.Errorf("parseAmount(%q) failed", c.in)
			continue
		}
		if d.String() != c.want {
			t.Errorf("parseAmount(%q) = %s, want %s", c.in, d.String(), c.want)
		}
	}
	if _, ok := parseAmount("N/A"); ok {
		t.Error("expected sentinel to fail parsing")
	}
}

func TestVentasNegativeValuesNulledRowRetained(t *testing.T) {
	in := raw(
		[]string{"id_venta", "id_producto", "id_sucursal", "fecha", "cantidad", "monto"},
		[]string{"1", "10", "100", "2023-01-03", "-3", "50.0"},
		[]string{"2", "11", "101", "2023-01-04", "2", "-9.5"},
	)
	res := Ventas(in)

	if res.RowsAfter != 2 {
		t.Fatalf("expected both rows retained, got %d", res.RowsAfter)
	}
	if !res.Table.Value(0, "cantidad").IsNull() {
		t.Error("expected negative cantidad to be nulled")
	}
	if !res.Table.Value(1, "monto").IsNull() {
		t.Error("expected negative monto to be nulled")
	}
	if q, ok := res.Table.Value(1, "cantidad").Int64(); !ok || q != 2 {
		t.Errorf("expected cantidad 2 retained, got %v ok=%v", q, ok)
	}
}

func TestVentasDateRangeBounds(t *testing.T) {
	future := time.Now().AddDate(0, 0, 10).Format("2006-01-02")
	in := raw(
		[]string{"id_venta", "fecha"},
		[]string{"1", "1999-12-31"},
		[]string{"2", "03/01/2023"},
		[]string{"3", future},
		[]string{"4", "no-es-fecha"},
	)
	res := Ventas(in)

	if !res.Table.Value(0, "fecha").IsNull() {
		t.Error("expected pre-2000 date to be nulled")
	}
	if d, ok := res.Table.Value(1, "fecha").Time(); !ok || d.Format("2006-01-02") != "2023-01-03" {
		t.Errorf("expected day-first 2023-01-03, got %v ok=%v", d, ok)
	}
	if !res.Table.Value(2, "fecha").IsNull() {
		t.Error("expected far-future date to be nulled")
	}
	if !res.Table.Value(3, "fecha").IsNull() {
		t.Error("expected unparseable date to be nulled")
	}
}

func TestParseDateFormats(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2023-01-05", "2023-01-05"},
		{"05/01/2023", "2023-01-05"},
		{"05.01.2023", "2023-01-05"},
		{"2023/01/05", "2023-01-05"},
		{"5/1/23", "2023-01-05"},
		{"05-01-2023", "2023-01-05"},
	}
	for _, c := range cases {
		d, ok := ParseDate(c.in)
		if !ok {
			t.Errorf("ParseDate(%q) failed", c.in)
			continue
		}
		if got := d.Format("2006-01-02"); got != c.want {
			t.Errorf("ParseDate(%q) = %s, want %s", c.in, got, c.want)
		}
	}

	for _, bad := range []string{"", "N/A", "--", "31/13/2023", "32/01/2023", "tres"} {
		if _, ok := ParseDate(bad); ok {
			t.Errorf("ParseDate(%q) unexpectedly succeeded", bad)
		}
	}
}

func TestVentasDateSummaryFields(t *testing.T) {
	in := raw(
		[]string{"id_venta", "fecha"},
		[]string{"1", "2023-01-03"},
		[]string{"1", "2023-01-04"},
		[]string{"2", "sin-fecha"},
		[]string{"3", "2023-01-05"},
	)
	res := Ventas(in)

	// antes de deduplicar: 3 fechas válidas de 4
	if res.DateValidity == nil || *res.DateValidity != 75 {
		t.Fatalf("expected pre-dedup validity 75, got %v", res.DateValidity)
	}
	if res.UnparseableDates != 1 {
		t.Errorf("expected 1 unparseable date, got %d", res.UnparseableDates)
	}

	// tras deduplicar quedan 3 filas, 2 con fecha
	if res.RowsAfter != 3 {
		t.Fatalf("expected 3 rows after dedup, got %d", res.RowsAfter)
	}
	want := float64(2) / float64(3) * 100
	if res.DateValidityDedup == nil || *res.DateValidityDedup != want {
		t.Errorf("expected post-dedup validity %v, got %v", want, res.DateValidityDedup)
	}

	// el resumen de ventas no reporta nulos de columnas clave
	if len(res.KeyNulls) != 0 {
		t.Errorf("expected no key-null entries for ventas, got %v", res.KeyNulls)
	}
}

func TestKeyNullsLabelsPerDataset(t *testing.T) {
	clientes := Clientes(raw([]string{"id_cliente", "nombre"}, []string{"1", "Ana"}))
	if clientes.KeyNullsLabel != "Nulos en columnas clave" {
		t.Errorf("unexpected clientes label %q", clientes.KeyNullsLabel)
	}
	productos := Productos(raw([]string{"id_producto", "nombre_producto"}, []string{"1", "Teclado"}))
	if productos.KeyNullsLabel != "Nulos clave" {
		t.Errorf("unexpected productos label %q", productos.KeyNullsLabel)
	}
}

func TestProductosAliasesAndDedup(t *testing.T) {
	in := raw(
		[]string{"Product_ID", "Nombre", "categoria", "Supplier"},
		[]string{"1", "Teclado", "Tec", "Acme"},
		[]string{"1", "Teclado bis", "Tec", "Acme"},
		[]string{"abc", "Mouse", "Tec", "Acme"},
	)
	res := Productos(in)

	if res.RowsAfter != 2 {
		t.Fatalf("expected 2 rows after dedup, got %d", res.RowsAfter)
	}
	if !res.Table.HasColumn("nombre_producto") || !res.Table.HasColumn("proveedor") {
		t.Fatal("expected aliased canonical columns")
	}
	// id no numerico -> null, la fila se conserva
	if !res.Table.Value(1, "id_producto").IsNull() {
		t.Error("expected non-numeric id to be nulled")
	}
}

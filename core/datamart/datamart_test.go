package datamart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"retail-etl/core/table"
)

func mustAppend(t *testing.T, tbl *table.Table, vals ...table.Value) {
	t.Helper()
	if err := tbl.Append(vals); err != nil {
		t.Fatalf("append: %v", err)
	}
}

func dec(t *testing.T, s string) table.Value {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return table.Dec(d)
}

func sampleDims(t *testing.T) (dimProducto, dimTiempo *table.Table) {
	dimProducto = table.New("id_producto", "nombre_producto", "categoria", "proveedor")
	mustAppend(t, dimProducto, table.Int(10), table.String("Teclado"), table.String("A"), table.String("Acme"))
	mustAppend(t, dimProducto, table.Int(11), table.String("Monitor"), table.String("B"), table.String("Acme"))

	dimTiempo = table.New("id_tiempo", "fecha", "anio", "mes", "dia")
	mustAppend(t, dimTiempo, table.Int(20230115),
		table.Date(time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)),
		table.Int(2023), table.Int(1), table.Int(15))
	mustAppend(t, dimTiempo, table.Int(20230220),
		table.Date(time.Date(2023, 2, 20, 0, 0, 0, 0, time.UTC)),
		table.Int(2023), table.Int(2), table.Int(20))
	return dimProducto, dimTiempo
}

func sampleFact(t *testing.T) *table.Table {
	fact := table.New("id_venta", "id_cliente", "id_producto", "id_tiempo", "cantidad", "total")
	mustAppend(t, fact, table.Int(1), table.Int(1), table.Int(10), table.Int(20230115), table.Int(2), dec(t, "100"))
	mustAppend(t, fact, table.Int(2), table.Int(2), table.Int(10), table.Int(20230115), table.Int(1), dec(t, "50"))
	mustAppend(t, fact, table.Int(3), table.Int(1), table.Int(11), table.Int(20230220), table.Int(4), dec(t, "300"))
	// unresolvable product and null time stay out of the aggregates
	mustAppend(t, fact, table.Int(4), table.Int(1), table.Int(99), table.Int(20230115), table.Int(1), dec(t, "999"))
	mustAppend(t, fact, table.Int(5), table.Int(1), table.Int(10), table.Null(), table.Int(1), dec(t, "999"))
	return fact
}

func TestMonthlyAggregation(t *testing.T) {
	dimProducto, dimTiempo := sampleDims(t)
	mart := Monthly(sampleFact(t), dimProducto, dimTiempo)

	if got := mart.NumRows(); got != 2 {
		t.Fatalf("monthly rows = %d, want 2", got)
	}

	// (2023, 1, A): 100 + 50 = 150, 3 units
	if cat, _ := mart.Value(0, "categoria").Str(); cat != "A" {
		t.Errorf("first group categoria = %q, want A", cat)
	}
	if total, _ := mart.Value(0, "total_ventas").Decimal(); !total.Equal(decimal.NewFromInt(150)) {
		t.Errorf("first group total = %s, want 150", total)
	}
	if units, _ := mart.Value(0, "unidades").Int64(); units != 3 {
		t.Errorf("first group unidades = %d, want 3", units)
	}

	// (2023, 2, B) sorts after month 1
	if mes, _ := mart.Value(1, "mes").Int64(); mes != 2 {
		t.Errorf("second group mes = %d, want 2", mes)
	}
	if cat, _ := mart.Value(1, "categoria").Str(); cat != "B" {
		t.Errorf("second group categoria = %q, want B", cat)
	}
}

func TestAnnualSortedByTotalDescending(t *testing.T) {
	dimProducto, dimTiempo := sampleDims(t)
	mart := Annual(sampleFact(t), dimProducto, dimTiempo)

	if got := mart.NumRows(); got != 2 {
		t.Fatalf("annual rows = %d, want 2", got)
	}
	// category B (300) must lead category A (150) within 2023
	if cat, _ := mart.Value(0, "categoria").Str(); cat != "B" {
		t.Errorf("leading categoria = %q, want B", cat)
	}
	if total, _ := mart.Value(0, "total_ventas").Decimal(); !total.Equal(decimal.NewFromInt(300)) {
		t.Errorf("leading total = %s, want 300", total)
	}
	if cat, _ := mart.Value(1, "categoria").Str(); cat != "A" {
		t.Errorf("second categoria = %q, want A", cat)
	}
}

func TestAggregationSkipsUnresolvableKeys(t *testing.T) {
	dimProducto, dimTiempo := sampleDims(t)
	mart := Annual(sampleFact(t), dimProducto, dimTiempo)

	sum := decimal.Zero
	mart.Each(func(r int) {
		if d, ok := mart.Value(r, "total_ventas").Decimal(); ok {
			sum = sum.Add(d)
		}
	})
	// the 999-amount rows with missing dimension keys never reach a group
	if !sum.Equal(decimal.NewFromInt(450)) {
		t.Errorf("grand total = %s, want 450", sum)
	}
}

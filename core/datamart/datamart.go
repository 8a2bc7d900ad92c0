// Package datamart aggregates the curated star schema into reporting marts.
package datamart

import (
	"github.com/shopspring/decimal"

	"retail-etl/core/table"
)

// categories and periods come from left-joining the fact to the product and
// time dimensions; fact rows without a matching dimension row keep null group
// keys and, as in any null-key grouping, stay out of the aggregates.

type groupKey struct {
	anio      int64
	mes       int64
	categoria string
}

type groupAgg struct {
	key      groupKey
	total    decimal.Decimal
	unidades int64
}

// Monthly aggregates sales by (anio, mes, categoria), sorted ascending by
// all three keys.
func Monthly(fact, dimProducto, dimTiempo *table.Table) *table.Table {
	groups := aggregate(fact, dimProducto, dimTiempo, true)

	t := table.New("anio", "mes", "categoria", "total_ventas", "unidades")
	for _, g := range groups {
		_ = t.Append([]table.Value{
			table.Int(g.key.anio),
			table.Int(g.key.mes),
			table.String(g.key.categoria),
			table.Dec(g.total),
			table.Int(g.unidades),
		})
	}
	t.SortBy(
		table.SortSpec{Column: "anio"},
		table.SortSpec{Column: "mes"},
		table.SortSpec{Column: "categoria"},
	)
	return t
}

// Annual aggregates sales by (anio, categoria), sorted by year ascending and
// then amount descending, so the highest-grossing category leads each year.
func Annual(fact, dimProducto, dimTiempo *table.Table) *table.Table {
	groups := aggregate(fact, dimProducto, dimTiempo, false)

	t := table.New("anio", "categoria", "total_ventas", "unidades")
	for _, g := range groups {
		_ = t.Append([]table.Value{
			table.Int(g.key.anio),
			table.String(g.key.categoria),
			table.Dec(g.total),
			table.Int(g.unidades),
		})
	}
	t.SortBy(
		table.SortSpec{Column: "anio"},
		table.SortSpec{Column: "total_ventas", Descending: true},
	)
	return t
}

func aggregate(fact, dimProducto, dimTiempo *table.Table, byMonth bool) []*groupAgg {
	categoria := lookupString(dimProducto, "id_producto", "categoria")
	anio := lookupInt(dimTiempo, "id_tiempo", "anio")
	mes := lookupInt(dimTiempo, "id_tiempo", "mes")

	byKey := make(map[groupKey]*groupAgg)
	var order []*groupAgg
	fact.Each(func(r int) {
		idProducto, okP := fact.Value(r, "id_producto").Int64()
		idTiempo, okT := fact.Value(r, "id_tiempo").Int64()
		if !okP || !okT {
			return
		}
		cat, okCat := categoria[idProducto]
		year, okYear := anio[idTiempo]
		month, okMonth := mes[idTiempo]
		if !okCat || !okYear || (byMonth && !okMonth) {
			return
		}

		key := groupKey{anio: year, categoria: cat}
		if byMonth {
			key.mes = month
		}
		agg, ok := byKey[key]
		if !ok {
			agg = &groupAgg{key: key, total: decimal.Zero}
			byKey[key] = agg
			order = append(order, agg)
		}
		if d, ok := fact.Value(r, "total").Decimal(); ok {
			agg.total = agg.total.Add(d)
		}
		if q, ok := fact.Value(r, "cantidad").Int64(); ok {
			agg.unidades += q
		}
	})
	return order
}

// lookupString indexes a non-null string column by an integer key column
func lookupString(t *table.Table, keyCol, valCol string) map[int64]string {
	m := make(map[int64]string, t.NumRows())
	t.Each(func(r int) {
		k, ok := t.Value(r, keyCol).Int64()
		if !ok {
			return
		}
		if v, ok := t.Value(r, valCol).Str(); ok {
			if _, dup := m[k]; !dup {
				m[k] = v
			}
		}
	})
	return m
}

// lookupInt indexes a non-null integer column by an integer key column
func lookupInt(t *table.Table, keyCol, valCol string) map[int64]int64 {
	m := make(map[int64]int64, t.NumRows())
	t.Each(func(r int) {
		k, ok := t.Value(r, keyCol).Int64()
		if !ok {
			return
		}
		if v, ok := t.Value(r, valCol).Int64(); ok {
			if _, dup := m[k]; !dup {
				m[k] = v
			}
		}
	})
	return m
}

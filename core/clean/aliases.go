// Package clean normalizes raw extracts into typed, deduplicated tables.
package clean

import (
	"retail-etl/core/table"
	"retail-etl/internal/errors"
)

// AliasMap declares, per canonical column name, the accepted source aliases.
// Headers are matched after trim+lowercase normalization.
type AliasMap map[string][]string

// Validate rejects maps where one alias resolves to two canonical names
func (m AliasMap) Validate() error {
	owner := make(map[string]string)
	for canonical, aliases := range m {
		for _, a := range aliases {
			if prev, dup := owner[a]; dup && prev != canonical {
				return errors.Newf(errors.TypeConfig, "alias %q maps to both %q and %q", a, prev, canonical)
			}
			owner[a] = canonical
		}
	}
	return nil
}

// Apply renames every aliased column present in the table to its canonical
// name.
func (m AliasMap) Apply(t *table.Table) {
	renames := make(map[string]string)
	for canonical, aliases := range m {
		for _, a := range aliases {
			renames[a] = canonical
		}
	}
	t.Rename(renames)
}

var clientesAliases = AliasMap{
	"id_cliente": {"customer_id", "cliente_id"},
	"nombre":     {"customername", "customer_name"},
}

var productosAliases = AliasMap{
	"id_producto":     {"product_id", "id"},
	"nombre_producto": {"nombre", "product_name"},
	"proveedor":       {"supplier"},
}

var (
	clientesColumns  = []string{"id_cliente", "nombre", "edad", "ubicacion", "categoria"}
	productosColumns = []string{"id_producto", "nombre_producto", "categoria", "proveedor"}
	ventasColumns    = []string{"id_venta", "id_producto", "id_sucursal", "fecha", "cantidad", "monto"}
)

func init() {
	for _, m := range []AliasMap{clientesAliases, productosAliases} {
		if err := m.Validate(); err != nil {
			panic(err)
		}
	}
}

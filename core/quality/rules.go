// Package quality computes per-column data-quality diagnostics and writes
// report artifacts.
package quality

import (
	"strings"

	"retail-etl/core/table"
)

// Kind is the expected value kind for a column
type Kind string

const (
	// NonEmpty expects a non-blank value
	NonEmpty Kind = "no_vacio"

	// Numeric expects a parseable number
	Numeric Kind = "numerico"

	// DateKind expects a parseable date
	DateKind Kind = "fecha"
)

// Rule binds a column to its expected kind
type Rule struct {
	Column string
	Kind   Kind
}

// RuleSet is an ordered list of column rules
type RuleSet []Rule

// DetectColumn returns the first column present in the table matching one of
// the candidates, case-insensitively.
func DetectColumn(t *table.Table, candidates ...string) string {
	lower := make(map[string]string)
	for _, c := range t.Columns() {
		lower[strings.ToLower(c)] = c
	}
	for _, cand := range candidates {
		if actual, ok := lower[strings.ToLower(cand)]; ok {
			return actual
		}
	}
	return ""
}

// RulesFor builds the expected-column rules for a dataset. The customers
// extract auto-detects its id and name columns; the others use fixed lists.
func RulesFor(dataset string, t *table.Table) RuleSet {
	switch dataset {
	case "clientes":
		var rules RuleSet
		if name := DetectColumn(t, "nombre", "name", "full_name"); name != "" {
			rules = append(rules, Rule{name, NonEmpty})
		}
		// la unicidad del id se aproxima con el conteo de duplicados
		if id := DetectColumn(t, "id_cliente", "cliente_id", "id", "idCliente"); id != "" {
			rules = append(rules, Rule{id, NonEmpty})
		}
		return rules
	case "productos":
		return RuleSet{
			{"id_producto", Numeric},
			{"nombre_producto", NonEmpty},
			{"categoria", NonEmpty},
			{"proveedor", NonEmpty},
		}
	case "ventas":
		return RuleSet{
			{"id_venta", Numeric},
			{"id_producto", Numeric},
			{"id_sucursal", Numeric},
			{"fecha", DateKind},
			{"cantidad", Numeric},
			{"monto", Numeric},
		}
	}
	return nil
}

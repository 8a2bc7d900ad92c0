package quality

// Impact is the canned quality-dimension / business-impact label reported
// for the worst-performing column. Pure reporting, never used downstream.
type Impact struct {
	Dimension   string
	Consequence string
}

// impactRule maps worst-column roles to a canned impact. Roles are resolved
// per dataset before lookup; "" is the catch-all.
type impactRule struct {
	Role   string
	Impact Impact
}

var impactRules = map[string][]impactRule{
	"clientes": {
		{"id", Impact{
			Dimension:   "Unicidad/Integridad",
			Consequence: "Confusión de clientes, duplicidad en reportes y errores de facturación.",
		}},
		{"nombre", Impact{
			Dimension:   "Completitud/Consistencia",
			Consequence: "Dificultad para personalizar comunicaciones y segmentar correctamente.",
		}},
		{"", Impact{
			Dimension:   "Calidad del Dato",
			Consequence: "Impacto general en reportes y toma de decisiones.",
		}},
	},
	"productos": {
		{"id", Impact{
			Dimension:   "Integridad/Unicidad de claves",
			Consequence: "IDs inválidos o duplicados afectan joins y el DW.",
		}},
		{"categoria", Impact{
			Dimension:   "Consistencia semántica",
			Consequence: "Categorías mal definidas dañan segmentaciones y reportes.",
		}},
		{"", Impact{
			Dimension:   "Completitud/Consistencia",
			Consequence: "Campos vacíos degradan la calidad de análisis.",
		}},
	},
	"ventas": {
		{"id", Impact{
			Dimension:   "Integridad/Unicidad de claves",
			Consequence: "Ventas duplicadas o inválidas distorsionan todas las métricas.",
		}},
		{"fecha", Impact{
			Dimension:   "Consistencia temporal",
			Consequence: "Fechas inválidas rompen series de tiempo y agregaciones.",
		}},
		{"medida", Impact{
			Dimension:   "Exactitud de medidas",
			Consequence: "Valores inválidos afectan KPIs (ingresos, unidades).",
		}},
		{"", Impact{
			Dimension:   "Completitud/Consistencia",
			Consequence: "Campos vacíos degradan la calidad del análisis.",
		}},
	},
}

// columnRole classifies the worst column for the impact lookup. idCol and
// nameCol carry the auto-detected customer columns; the other datasets
// classify by canonical column name.
func columnRole(dataset, column, idCol, nameCol string) string {
	switch dataset {
	case "clientes":
		switch column {
		case idCol:
			return "id"
		case nameCol:
			return "nombre"
		}
	case "productos":
		switch column {
		case "id_producto":
			return "id"
		case "categoria":
			return "categoria"
		}
	case "ventas":
		switch column {
		case "id_venta":
			return "id"
		case "fecha":
			return "fecha"
		case "cantidad", "monto":
			return "medida"
		}
	}
	return ""
}

// ImpactLabels returns the console labels for the impact lines. The customers
// report phrases them differently from the other two datasets.
func ImpactLabels(dataset string) (dimension, consequence string) {
	if dataset == "clientes" {
		return "Dimensión de calidad más comprometida:", "Posibles consecuencias:"
	}
	return "Dimensión afectada:", "Impacto potencial:"
}

// Assess resolves the canned impact for the worst column of a dataset
func Assess(dataset, column, idCol, nameCol string) Impact {
	role := columnRole(dataset, column, idCol, nameCol)
	rules := impactRules[dataset]
	var fallback Impact
	for _, rule := range rules {
		if rule.Role == role {
			return rule.Impact
		}
		if rule.Role == "" {
			fallback = rule.Impact
		}
	}
	return fallback
}

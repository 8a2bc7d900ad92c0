package quality

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"retail-etl/core/table"
	"retail-etl/internal/logging"
)

// Diagnose reads a CSV, prints the console diagnostics, and writes the CSV
// and best-effort Markdown artifacts into reportsDir.
func Diagnose(dataset, csvPath, reportsDir string, opts table.Options) error {
	t, err := table.ReadCSV(csvPath, opts)
	if err != nil {
		return err
	}

	// vista inicial del contenido
	fmt.Println("Dataframe")
	fmt.Print(t.Head(9))

	var idCol, nameCol string
	if dataset == "clientes" {
		idCol = DetectColumn(t, "id_cliente", "cliente_id", "id", "idCliente")
		nameCol = DetectColumn(t, "nombre", "name", "full_name")
	}

	rep := Build(t, RulesFor(dataset, t))

	fmt.Printf("\nDiagnóstico %s.csv\n", dataset)
	if rep.Empty() {
		fmt.Println("No se encontraron columnas esperadas.")
	} else {
		fmt.Print(rep.ConsoleTable())
	}

	var extras []string
	if dataset == "ventas" {
		extras = append(extras, businessChecks(t)...)
	}
	if dataset == "productos" || dataset == "ventas" {
		line := fmt.Sprintf("Duplicados de filas completas: %d", t.CountDuplicateRows())
		fmt.Println("\n" + line)
		extras = append(extras, line)
	}

	if worst, ok := rep.Worst(); ok {
		impact := Assess(dataset, worst.Field, idCol, nameCol)
		dimLabel, impLabel := ImpactLabels(dataset)
		fmt.Printf("\nCampo con más problemas: %s\n", worst.Field)
		fmt.Printf("%s %s\n", dimLabel, impact.Dimension)
		fmt.Printf("%s %s\n", impLabel, impact.Consequence)
	}

	base := filepath.Join(reportsDir, "diagnostico_calidad_"+dataset)
	if err := rep.WriteCSV(base + ".csv"); err != nil {
		return err
	}
	if err := WriteMarkdown(base+".md", "Diagnóstico "+dataset+".csv", rep, extras); err != nil {
		fmt.Printf("(Aviso) No se pudo escribir Markdown: %v\n", err)
		logging.Warn("markdown artifact not written", zap.String("dataset", dataset), zap.Error(err))
	}
	return nil
}

// businessChecks reports simple domain-rule violations on the raw sales
// extract: negative quantities and amounts.
func businessChecks(t *table.Table) []string {
	checks := []struct {
		column string
		label  string
	}{
		{"cantidad", "cantidad_negativa"},
		{"monto", "monto_negativo"},
	}

	var lines []string
	var printed bool
	for _, c := range checks {
		if !t.HasColumn(c.column) {
			continue
		}
		n := countNegative(t, c.column)
		if n == 0 {
			continue
		}
		if !printed {
			fmt.Println("\nCheques de negocio:")
			printed = true
		}
		line := fmt.Sprintf(" - %s: %d filas", c.label, n)
		fmt.Println(line)
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

func countNegative(t *table.Table, col string) int {
	n := 0
	t.Each(func(r int) {
		v := t.Value(r, col)
		switch v.Kind() {
		case table.KindInt:
			if i, _ := v.Int64(); i < 0 {
				n++
			}
		case table.KindDecimal:
			if d, _ := v.Decimal(); d.IsNegative() {
				n++
			}
		case table.KindString:
			s, _ := v.Str()
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && f < 0 {
				n++
			}
		}
	})
	return n
}

package quality

import (
	"fmt"
	"math"
	"strconv"

	"retail-etl/core/table"
)

// Row is one examined column in a report
type Row struct {
	Field        string
	Completeness float64
	Validity     float64
	Duplicates   int
}

// Report holds the per-column diagnostics for one dataset
type Report struct {
	Rows []Row
}

// Build computes the report for the given rules. Rules naming absent columns
// are skipped silently; when none of the expected columns exist, every
// present column is diagnosed as non-empty. Percentages are rounded to whole
// numbers; every downstream consumer (console, CSV, worst-column pick) works
// on the rounded values.
func Build(t *table.Table, rules RuleSet) Report {
	applicable := make(RuleSet, 0, len(rules))
	for _, rule := range rules {
		if t.HasColumn(rule.Column) {
			applicable = append(applicable, rule)
		}
	}
	if len(applicable) == 0 {
		for _, c := range t.Columns() {
			applicable = append(applicable, Rule{c, NonEmpty})
		}
	}

	rep := Report{}
	for _, rule := range applicable {
		rep.Rows = append(rep.Rows, Row{
			Field:        rule.Column,
			Completeness: math.Round(Completeness(t, rule.Column)),
			Validity:     math.Round(Validity(t, rule.Column, rule.Kind)),
			Duplicates:   Duplicates(t, rule.Column),
		})
	}
	return rep
}

// Empty reports whether the report has no rows
func (r Report) Empty() bool {
	return len(r.Rows) == 0
}

// Worst returns the row with the lowest validity percentage. Ties keep the
// earliest row.
func (r Report) Worst() (Row, bool) {
	if len(r.Rows) == 0 {
		return Row{}, false
	}
	worst := r.Rows[0]
	for _, row := range r.Rows[1:] {
		if row.Validity < worst.Validity {
			worst = row
		}
	}
	return worst, true
}

var reportColumns = []string{"Campo", "Completitud (%)", "Validez (%)", "Duplicados"}

// ConsoleTable renders the report as an aligned console table with
// integer-percentage formatting.
func (r Report) ConsoleTable() string {
	t := table.New(reportColumns...)
	for _, row := range r.Rows {
		_ = t.Append([]table.Value{
			table.String(row.Field),
			table.String(fmt.Sprintf("%.0f%%", row.Completeness)),
			table.String(fmt.Sprintf("%.0f%%", row.Validity)),
			table.Int(int64(row.Duplicates)),
		})
	}
	return t.RenderConsole()
}

// WriteCSV writes the report with numeric percentage columns
func (r Report) WriteCSV(path string) error {
	t := table.New(reportColumns...)
	for _, row := range r.Rows {
		_ = t.Append([]table.Value{
			table.String(row.Field),
			table.String(strconv.FormatFloat(row.Completeness, 'f', 1, 64)),
			table.String(strconv.FormatFloat(row.Validity, 'f', 1, 64)),
			table.Int(int64(row.Duplicates)),
		})
	}
	return table.WriteCSV(t, path)
}

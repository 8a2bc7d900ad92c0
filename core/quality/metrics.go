package quality

import (
	"regexp"
	"strconv"
	"strings"

	"retail-etl/core/clean"
	"retail-etl/core/table"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Completeness returns the fraction of non-null values as a percentage
func Completeness(t *table.Table, col string) float64 {
	rows := t.NumRows()
	if rows == 0 {
		return 0
	}
	return float64(rows-t.NullCount(col)) / float64(rows) * 100
}

// Validity returns the fraction of values conforming to the expected kind,
// as a percentage.
func Validity(t *table.Table, col string, kind Kind) float64 {
	rows := t.NumRows()
	if rows == 0 {
		return 0
	}
	switch kind {
	case Numeric:
		return countValid(t, col, validNumeric) / float64(rows) * 100
	case DateKind:
		return dateValidity(t, col)
	default:
		return countValid(t, col, validNonEmpty) / float64(rows) * 100
	}
}

func countValid(t *table.Table, col string, valid func(table.Value) bool) float64 {
	n := 0.0
	t.Each(func(r int) {
		if valid(t.Value(r, col)) {
			n++
		}
	})
	return n
}

func validNonEmpty(v table.Value) bool {
	if v.IsNull() {
		return false
	}
	return strings.TrimSpace(v.Render()) != ""
}

func validNumeric(v table.Value) bool {
	switch v.Kind() {
	case table.KindInt, table.KindDecimal:
		return true
	case table.KindString:
		s, _ := v.Str()
		_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return err == nil
	}
	return false
}

// dateValidity follows a three-step policy: already-typed dates count like
// completeness; if the bulk of the values look ISO (YYYY-MM-DD) the pattern
// matches count as valid without reparsing; otherwise values go through
// day-first parsing.
func dateValidity(t *table.Table, col string) float64 {
	rows := t.NumRows()
	typed, iso, parsed, nonNull := 0, 0, 0, 0
	t.Each(func(r int) {
		v := t.Value(r, col)
		if v.IsNull() {
			return
		}
		nonNull++
		if v.Kind() == table.KindDate {
			typed++
			return
		}
		s := strings.TrimSpace(v.Render())
		if isoDate.MatchString(s) {
			iso++
		}
		if _, ok := clean.ParseDate(s); ok {
			parsed++
		}
	})

	if nonNull == 0 {
		return 0
	}
	if typed == nonNull {
		return float64(nonNull) / float64(rows) * 100
	}
	if iso*2 > nonNull {
		return float64(iso) / float64(rows) * 100
	}
	return float64(parsed) / float64(rows) * 100
}

// Duplicates counts values that repeat a prior value in the column; the
// first occurrence is not counted. Nulls here compare equal to each other.
func Duplicates(t *table.Table, col string) int {
	seen := make(map[string]struct{})
	dups := 0
	t.Each(func(r int) {
		v := t.Value(r, col)
		key := "\x00~null"
		if !v.IsNull() {
			key = v.Render()
		}
		if _, dup := seen[key]; dup {
			dups++
			return
		}
		seen[key] = struct{}{}
	})
	return dups
}

package table

import (
	"sort"
	"strings"

	"retail-etl/internal/errors"
)

// Table is an ordered sequence of rows with named columns.
type Table struct {
	cols []string
	idx  map[string]int
	rows [][]Value
}

// New creates an empty table with the given columns
func New(cols ...string) *Table {
	t := &Table{cols: append([]string(nil), cols...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.idx = make(map[string]int, len(t.cols))
	for i, c := range t.cols {
		t.idx[c] = i
	}
}

// Columns returns the column names in order
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the row count
func (t *Table) NumRows() int {
	return len(t.rows)
}

// HasColumn reports whether a column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.idx[name]
	return ok
}

// Append adds a row. The row length must match the column count.
func (t *Table) Append(row []Value) error {
	if len(row) != len(t.cols) {
		return errors.Newf(errors.TypeFormat, "row has %d cells, table has %d columns", len(row), len(t.cols))
	}
	t.rows = append(t.rows, row)
	return nil
}

// Value returns the cell at (row, column). Unknown columns read as null.
func (t *Table) Value(row int, col string) Value {
	i, ok := t.idx[col]
	if !ok || row < 0 || row >= len(t.rows) {
		return Null()
	}
	return t.rows[row][i]
}

// SetValue overwrites the cell at (row, column)
func (t *Table) SetValue(row int, col string, v Value) {
	if i, ok := t.idx[col]; ok && row >= 0 && row < len(t.rows) {
		t.rows[row][i] = v
	}
}

// NormalizeHeaders trims and lowercases all column names
func (t *Table) NormalizeHeaders() {
	for i, c := range t.cols {
		t.cols[i] = strings.ToLower(strings.TrimSpace(c))
	}
	t.reindex()
}

// Rename renames columns according to the given old→new mapping. Missing
// columns are ignored.
func (t *Table) Rename(mapping map[string]string) {
	for i, c := range t.cols {
		if n, ok := mapping[c]; ok {
			t.cols[i] = n
		}
	}
	t.reindex()
}

// EnsureColumns appends any missing column as entirely null
func (t *Table) EnsureColumns(names ...string) {
	for _, name := range names {
		if t.HasColumn(name) {
			continue
		}
		t.cols = append(t.cols, name)
		for i := range t.rows {
			t.rows[i] = append(t.rows[i], Null())
		}
	}
	t.reindex()
}

// Select returns a new table holding a copy of the named columns, in order
func (t *Table) Select(names ...string) (*Table, error) {
	for _, name := range names {
		if !t.HasColumn(name) {
			return nil, errors.Newf(errors.TypeFormat, "unknown column: %s", name)
		}
	}
	out := New(names...)
	for r := range t.rows {
		row := make([]Value, len(names))
		for i, name := range names {
			row[i] = t.rows[r][t.idx[name]]
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}

// NullCount returns the number of null cells in a column
func (t *Table) NullCount(col string) int {
	i, ok := t.idx[col]
	if !ok {
		return len(t.rows)
	}
	n := 0
	for r := range t.rows {
		if t.rows[r][i].IsNull() {
			n++
		}
	}
	return n
}

// rowKey fingerprints a full row for exact-duplicate detection. Unlike key
// matching, nulls here compare equal to each other.
func (t *Table) rowKey(r int) string {
	var b strings.Builder
	for _, v := range t.rows[r] {
		if v.IsNull() {
			b.WriteString("\x00~null")
		} else {
			b.WriteString(v.Render())
		}
		b.WriteByte('\x00')
	}
	return b.String()
}

// DropDuplicateRows removes rows that exactly repeat an earlier row,
// keeping the first occurrence.
func (t *Table) DropDuplicateRows() {
	seen := make(map[string]struct{}, len(t.rows))
	kept := t.rows[:0]
	for r := range t.rows {
		k := t.rowKey(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, t.rows[r])
	}
	t.rows = kept
}

// CountDuplicateRows returns how many rows exactly repeat an earlier row
func (t *Table) CountDuplicateRows() int {
	seen := make(map[string]struct{}, len(t.rows))
	dups := 0
	for r := range t.rows {
		k := t.rowKey(r)
		if _, dup := seen[k]; dup {
			dups++
			continue
		}
		seen[k] = struct{}{}
	}
	return dups
}

// DedupByKey removes rows whose key column repeats an earlier row's key,
// keeping the first occurrence. Rows with a null key are all retained:
// null matches nothing, not even another null.
func (t *Table) DedupByKey(col string) (before, after int) {
	before = len(t.rows)
	i, ok := t.idx[col]
	if !ok {
		return before, before
	}
	seen := make(map[string]struct{}, len(t.rows))
	kept := t.rows[:0]
	for r := range t.rows {
		v := t.rows[r][i]
		if !v.IsNull() {
			k := v.Render()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
		}
		kept = append(kept, t.rows[r])
	}
	t.rows = kept
	return before, len(t.rows)
}

// SortSpec orders one column, optionally descending
type SortSpec struct {
	Column     string
	Descending bool
}

// SortBy stably sorts rows by the given specs in order of significance
func (t *Table) SortBy(specs ...SortSpec) {
	idxs := make([]int, 0, len(specs))
	desc := make([]bool, 0, len(specs))
	for _, s := range specs {
		if i, ok := t.idx[s.Column]; ok {
			idxs = append(idxs, i)
			desc = append(desc, s.Descending)
		}
	}
	sort.SliceStable(t.rows, func(a, b int) bool {
		for k, i := range idxs {
			c := t.rows[a][i].Compare(t.rows[b][i])
			if c == 0 {
				continue
			}
			if desc[k] {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// Each calls fn for every row index
func (t *Table) Each(fn func(r int)) {
	for r := range t.rows {
		fn(r)
	}
}

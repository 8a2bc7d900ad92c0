package table

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCSVRoundTrip(t *testing.T) {
	tbl := New("id_cliente", "nombre", "monto", "fecha")
	rows := [][]Value{
		{Int(1), String("Ana"), Dec(decimal.RequireFromString("1234.56")), Date(time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC))},
		{Int(2), Null(), Null(), Null()},
		{Null(), String("Luis"), Dec(decimal.RequireFromString("10")), Null()},
	}
	for _, r := range rows {
		if err := tbl.Append(r); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(tbl, path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	got, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if got.NumRows() != tbl.NumRows() {
		t.Fatalf("expected %d rows after round trip, got %d", tbl.NumRows(), got.NumRows())
	}

	// the set of non-null primary keys survives the round trip
	keys := make(map[string]struct{})
	got.Each(func(r int) {
		v := got.Value(r, "id_cliente")
		if !v.IsNull() {
			keys[v.Render()] = struct{}{}
		}
	})
	if len(keys) != 2 {
		t.Fatalf("expected 2 non-null keys, got %d", len(keys))
	}
	for _, want := range []string{"1", "2"} {
		if _, ok := keys[want]; !ok {
			t.Errorf("missing key %s after round trip", want)
		}
	}

	if d := got.Value(0, "fecha").Render(); d != "2023-01-03" {
		t.Errorf("expected date 2023-01-03, got %q", d)
	}
	if m := got.Value(0, "monto").Render(); m != "1234.56" {
		t.Errorf("expected amount 1234.56, got %q", m)
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	dir := t.TempDir()

	// extra fields are a structural failure, not something to repair
	long := filepath.Join(dir, "long.csv")
	if err := os.WriteFile(long, []byte("a,b\n1,2,3\n"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := ReadCSV(long, DefaultOptions()); err == nil {
		t.Fatal("expected error for a record with extra fields")
	}

	// missing trailing fields read as nulls
	short := filepath.Join(dir, "short.csv")
	if err := os.WriteFile(short, []byte("a,b\n1\n"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	got, err := ReadCSV(short, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if !got.Value(0, "b").IsNull() {
		t.Error("expected missing trailing field to read as null")
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"), DefaultOptions())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDedupByKeyKeepsFirstAndRetainsNullKeys(t *testing.T) {
	tbl := New("id", "v")
	for _, row := range [][]Value{
		{Int(5), String("first")},
		{Null(), String("null-a")},
		{Int(5), String("second")},
		{Null(), String("null-b")},
		{Int(7), String("other")},
	} {
		if err := tbl.Append(row); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	before, after := tbl.DedupByKey("id")
	if before != 5 || after != 4 {
		t.Fatalf("expected 5 -> 4 rows, got %d -> %d", before, after)
	}
	if v, _ := tbl.Value(0, "v").Str(); v != "first" {
		t.Errorf("expected first occurrence kept, got %q", v)
	}

	// null keys never match each other
	nulls := 0
	tbl.Each(func(r int) {
		if tbl.Value(r, "id").IsNull() {
			nulls++
		}
	})
	if nulls != 2 {
		t.Errorf("expected both null-key rows retained, got %d", nulls)
	}
}

func TestNullNeverEqualsNull(t *testing.T) {
	if Null().Equal(Null()) {
		t.Error("null must not match null")
	}
	if Null().Equal(Int(0)) {
		t.Error("null must not match zero")
	}
	if !Int(3).Equal(Int(3)) {
		t.Error("equal ints must match")
	}
}

func TestEnsureColumnsCreatesNullColumn(t *testing.T) {
	tbl := New("a")
	_ = tbl.Append([]Value{String("x")})
	tbl.EnsureColumns("a", "b")
	if !tbl.HasColumn("b") {
		t.Fatal("expected column b to be created")
	}
	if !tbl.Value(0, "b").IsNull() {
		t.Error("expected created column to be null")
	}
}

func TestSortByDescending(t *testing.T) {
	tbl := New("anio", "total")
	for _, row := range [][]Value{
		{Int(2024), Dec(decimal.NewFromInt(10))},
		{Int(2023), Dec(decimal.NewFromInt(5))},
		{Int(2023), Dec(decimal.NewFromInt(50))},
	} {
		_ = tbl.Append(row)
	}
	tbl.SortBy(SortSpec{Column: "anio"}, SortSpec{Column: "total", Descending: true})

	want := []string{"50", "5", "10"}
	for i, w := range want {
		if got := tbl.Value(i, "total").Render(); got != w {
			t.Errorf("row %d: expected total %s, got %s", i, w, got)
		}
	}
}

func TestDropDuplicateRowsTreatsNullsEqual(t *testing.T) {
	tbl := New("a", "b")
	_ = tbl.Append([]Value{String("x"), Null()})
	_ = tbl.Append([]Value{String("x"), Null()})
	_ = tbl.Append([]Value{String("x"), String("y")})
	tbl.DropDuplicateRows()
	if tbl.NumRows() != 2 {
		t.Fatalf("expected 2 rows after exact dedup, got %d", tbl.NumRows())
	}
}

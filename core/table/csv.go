package table

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"retail-etl/internal/errors"
)

// Options controls CSV reading
type Options struct {
	// Sep is the field separator
	Sep rune

	// Encoding is the input text encoding (utf-8, latin-1, windows-1252)
	Encoding string
}

// DefaultOptions returns comma-separated UTF-8
func DefaultOptions() Options {
	return Options{Sep: ',', Encoding: "utf-8"}
}

func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin-1", "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, errors.Newf(errors.TypeConfig, "unsupported encoding: %s", encoding)
}

// ReadCSV reads a CSV file into an all-string table. The first record is the
// header; rows with more fields than the header fail the read, rows with
// fewer are padded with nulls. Empty cells read as null.
func ReadCSV(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			resolved, absErr := filepath.Abs(path)
			if absErr != nil {
				resolved = path
			}
			return nil, errors.NotFound("CSV file", resolved)
		}
		return nil, errors.IO("opening CSV", err)
	}
	defer f.Close()

	src, err := decodingReader(f, opts.Encoding)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(src)
	if opts.Sep != 0 {
		r.Comma = opts.Sep
	}
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, errors.Format("reading CSV header", err)
	}

	t := New(header...)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Format("reading CSV record", err)
		}
		if len(rec) > len(header) {
			return nil, errors.Newf(errors.TypeFormat, "record has %d fields, header has %d", len(rec), len(header))
		}
		row := make([]Value, len(header))
		for i := range header {
			if i >= len(rec) || rec[i] == "" {
				row[i] = Null()
				continue
			}
			row[i] = String(rec[i])
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// WriteCSV writes the table, creating parent directories as needed. Dates
// serialize as YYYY-MM-DD and nulls as empty cells.
func WriteCSV(t *Table, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.IO("creating output directory", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.IO("creating CSV file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.cols); err != nil {
		return errors.IO("writing CSV header", err)
	}
	rec := make([]string, len(t.cols))
	for r := range t.rows {
		for i := range t.cols {
			rec[i] = t.rows[r][i].Render()
		}
		if err := w.Write(rec); err != nil {
			return errors.IO("writing CSV record", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.IO("flushing CSV", err)
	}
	return nil
}

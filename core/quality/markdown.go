package quality

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// RenderMarkdown writes the report as a Markdown document: a title, the
// diagnostics table with integer percentages, and any extra lines.
func RenderMarkdown(w io.Writer, title string, rep Report, extras []string) error {
	if _, err := fmt.Fprintf(w, "## %s\n\n", title); err != nil {
		return err
	}

	header := "| " + strings.Join(reportColumns, " | ") + " |"
	sep := "|" + strings.Repeat("---|", len(reportColumns))
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, sep); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		if _, err := fmt.Fprintf(w, "| %s | %.0f%% | %.0f%% | %d |\n",
			row.Field, row.Completeness, row.Validity, row.Duplicates); err != nil {
			return err
		}
	}

	for _, extra := range extras {
		if _, err := fmt.Fprintf(w, "\n%s\n", extra); err != nil {
			return err
		}
	}
	return nil
}

// WriteMarkdown renders the Markdown artifact to a file. Callers treat a
// failure as a warning, never as a stage failure.
func WriteMarkdown(path, title string, rep Report, extras []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderMarkdown(f, title, rep, extras); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Package ingest copies source extracts into the raw zone unchanged.
package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"retail-etl/internal/errors"
	"retail-etl/internal/logging"
)

// SourceFiles is the fixed set of expected extracts
var SourceFiles = []string{"clientes.csv", "productos.csv", "ventas.csv"}

// Run copies every expected file from seedDir into rawDir byte-for-byte,
// creating rawDir if needed. The first missing source file aborts the
// remaining copies.
func Run(seedDir, rawDir string) error {
	if err := os.MkdirAll(rawDir, 0755); err != nil {
		return errors.IO("creating raw zone", err)
	}

	for _, name := range SourceFiles {
		src := filepath.Join(seedDir, name)
		dst := filepath.Join(rawDir, name)
		if err := copyFile(src, dst); err != nil {
			return err
		}
		fmt.Printf("Ingestado: %s -> %s\n", name, dst)
		logging.Debug("copied source file", zap.String("src", src), zap.String("dst", dst))
	}
	fmt.Println("Ingesta completada")
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			resolved, absErr := filepath.Abs(src)
			if absErr != nil {
				resolved = src
			}
			return errors.NotFound("source file", resolved)
		}
		return errors.IO("opening source file", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.IO("creating raw copy", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.IO("copying file", err)
	}
	if err := out.Close(); err != nil {
		return errors.IO("closing raw copy", err)
	}
	return nil
}

// Package fs provides file-based sinks for crawled clinics.
package fs

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fwojciec/clinicdir"
)

// Ensure Writer implements clinicdir.ClinicWriter at compile time.
var _ clinicdir.ClinicWriter = (*Writer)(nil)

// Writer streams clinics to a UTF-8 CSV file, one flushed row per clinic.
type Writer struct {
	path  string
	file  *os.File
	csv   *csv.Writer
	count int
}

// Create creates or truncates the CSV file at path and writes the header.
// Parent directories are created as needed. Replacing an existing file is
// logged as a warning.
func Create(path string, logger *slog.Logger) (*Writer, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if _, err := os.Stat(path); err == nil {
		logger.Warn("overwriting existing file", "path", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := &Writer{path: path, file: f, csv: csv.NewWriter(f)}
	if err := w.writeRow(clinicdir.Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return w, nil
}

// WriteClinic appends the clinic as a row and flushes it to disk.
func (w *Writer) WriteClinic(ctx context.Context, clinic *clinicdir.Clinic) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.writeRow(clinic.Row()); err != nil {
		return err
	}
	w.count++
	return nil
}

// Path returns the file being written.
func (w *Writer) Path() string {
	return w.path
}

// Count returns the number of clinic rows written, excluding the header.
func (w *Writer) Count() int {
	return w.count
}

// Close flushes any buffered data and closes the file.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	w.csv.Flush()
	flushErr := w.csv.Error()
	closeErr := w.file.Close()
	w.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func (w *Writer) writeRow(row []string) error {
	if w.file == nil {
		return clinicdir.Errorf(clinicdir.EINVALID, "writer closed: %s", w.path)
	}
	if err := w.csv.Write(row); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}

package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"nshopping-manager/models"
)

// CSVWriter writes classified rows to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(rowHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends rows to the file.
func (c *CSVWriter) Write(rows []models.ClassifiedRow) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := writeRecords(c.writer, rows); err != nil {
		return err
	}
	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// EncodeCSV renders rows, header first, as UTF-8 CSV.
func EncodeCSV(rows []models.ClassifiedRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(rowHeader); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	if err := writeRecords(w, rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: flush: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRecords(w *csv.Writer, rows []models.ClassifiedRow) error {
	for _, r := range rows {
		if err := w.Write(rowRecord(r)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	return nil
}

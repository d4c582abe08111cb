package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"datacleaners/models"
)

// CSVWriter writes a header and rows as UTF-8 comma-separated text.
type CSVWriter struct {
	closer io.Closer
	writer *csv.Writer
}

// NewCSVWriter writes the header row to w and returns a writer for the rows.
// If w is an io.Closer it is closed by Close.
func NewCSVWriter(w io.Writer, header []string) (*CSVWriter, error) {
	cw := &CSVWriter{writer: csv.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		cw.closer = c
	}
	if err := cw.writer.Write(header); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	return cw, nil
}

// Write appends rows.
func (c *CSVWriter) Write(records [][]string) error {
	for _, rec := range records {
		if err := c.writer.Write(rec); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	return nil
}

// Close flushes buffered rows and closes the underlying writer if it can be.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// CreateFile creates (or truncates) the file at path. Intermediate
// directories are created automatically.
func CreateFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("storage: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("storage: create file %q: %w", path, err)
	}
	return f, nil
}

// WriteTable writes records through tw and closes it.
func WriteTable(tw TableWriter, records [][]string) error {
	if err := tw.Write(records); err != nil {
		_ = tw.Close()
		return err
	}
	return tw.Close()
}

// LeadRecords flattens leads in models.LeadHeader order.
func LeadRecords(leads []*models.Lead) [][]string {
	out := make([][]string, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.Record())
	}
	return out
}

// KeywordRecords returns each keyword's full source row.
func KeywordRecords(keywords []*models.Keyword) [][]string {
	out := make([][]string, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, k.Fields)
	}
	return out
}

// NicheReportRecords flattens reports in models.NicheReportHeader order.
func NicheReportRecords(reports []*models.NicheReport) [][]string {
	out := make([][]string, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.Record())
	}
	return out
}

// WriteCSV writes header and records to w as CSV.
func WriteCSV(w io.Writer, header []string, records [][]string) error {
	cw, err := NewCSVWriter(w, header)
	if err != nil {
		return err
	}
	return WriteTable(cw, records)
}

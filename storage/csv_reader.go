package storage

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"datacleaners/models"
)

// ErrNoHeader is returned when a file has no header row to read.
var ErrNoHeader = errors.New("no columns to parse")

// ReadOptions controls how a delimited file is split into a Table.
type ReadOptions struct {
	// Comma is the field delimiter; 0 means ','.
	Comma rune
	// SkipLines is the number of physical lines dropped before the header.
	SkipLines int
	// TrimHeader strips surrounding whitespace from column labels.
	TrimHeader bool
}

// KeywordReadOptions describes a keyword-planner export: tab-separated,
// two banner lines above the header.
var KeywordReadOptions = ReadOptions{Comma: '\t', SkipLines: 2, TrimHeader: true}

// LeadReadOptions describes a scraped lead export: plain CSV.
var LeadReadOptions = ReadOptions{Comma: ','}

// ExportReadOptions describes an already-converted keyword export.
var ExportReadOptions = ReadOptions{Comma: ',', TrimHeader: true}

// ReadTable parses r into a Table.
func ReadTable(r io.Reader, opts ReadOptions) (*models.Table, error) {
	br := bufio.NewReader(r)
	for i := 0; i < opts.SkipLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return nil, ErrNoHeader
			}
			return nil, fmt.Errorf("csv: skip line %d: %w", i+1, err)
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	if opts.TrimHeader {
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}
	}

	table := &models.Table{Header: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}

// ReadFile tries each decoding in order until one both decodes raw and
// parses it with opts. Every attempt starts again from the first byte.
func ReadFile(name string, raw []byte, decodings []Decoding, opts ReadOptions) (*models.Table, error) {
	derr := &DecodeError{File: name}
	for _, d := range decodings {
		text, err := d.Decode(raw)
		if err == nil {
			var table *models.Table
			table, err = ReadTable(bytes.NewReader(text), opts)
			if err == nil {
				table.Name = name
				return table, nil
			}
		}
		derr.Attempts = append(derr.Attempts, Attempt{Decoding: d.Name, Err: err})
	}
	return nil, derr
}

// ReadKeywordFile reads a keyword-planner export.
func ReadKeywordFile(name string, raw []byte) (*models.Table, error) {
	return ReadFile(name, raw, KeywordDecodings, KeywordReadOptions)
}

// ReadLeadFile reads a scraped lead export.
func ReadLeadFile(name string, raw []byte) (*models.Table, error) {
	return ReadFile(name, raw, LeadDecodings, LeadReadOptions)
}

// ReadExportFile reads a keyword export that has already been converted to
// plain comma-separated UTF-8.
func ReadExportFile(name string, raw []byte) (*models.Table, error) {
	return ReadFile(name, raw, LeadDecodings, ExportReadOptions)
}

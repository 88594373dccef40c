// Package importer turns spreadsheet uploads into validated contact records.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const MaxRows = 10000

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("file has no header row")
	ErrTooManyRows       = fmt.Errorf("file exceeds %d data rows", MaxRows)
)

// Row is one data row; Number is the 1-based row number a spreadsheet shows.
type Row struct {
	Number int
	Cells  []string
}

type Table struct {
	Header []string
	Rows   []Row
}

// Parse reads a .csv, .tsv or .xlsx upload. The first non-empty row is the header.
func Parse(filename string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading upload: %w", err)
		}
		return parseDelimited(data, sniffDelimiter(data))
	case ".tsv":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading upload: %w", err)
		}
		return parseDelimited(data, '\t')
	case ".xlsx":
		return parseXLSX(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
}

// sniffDelimiter picks the most frequent of comma, semicolon and tab on the first line.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func parseDelimited(data []byte, delimiter rune) (*Table, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	t := &Table{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if err := t.add(line, record); err != nil {
			return nil, err
		}
	}
	if t.Header == nil {
		return nil, ErrEmptyFile
	}
	return t, nil
}

func parseXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		t := &Table{}
		for i, record := range rows {
			if err := t.add(i+1, record); err != nil {
				return nil, err
			}
		}
		if t.Header != nil {
			return t, nil
		}
	}
	return nil, ErrEmptyFile
}

func (t *Table) add(number int, record []string) error {
	cells := make([]string, len(record))
	blank := true
	for i, c := range record {
		cells[i] = strings.TrimSpace(c)
		if cells[i] != "" {
			blank = false
		}
	}
	if blank {
		return nil
	}
	if t.Header == nil {
		t.Header = cells
		return nil
	}
	if len(t.Rows) >= MaxRows {
		return ErrTooManyRows
	}
	t.Rows = append(t.Rows, Row{Number: number, Cells: cells})
	return nil
}

func (r Row) cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, use .csv or .xlsx")
	ErrEmptyFile         = errors.New("file has no data rows")
)

// Parse reads an uploaded file, picking the decoder from its extension.
func Parse(filename string, r io.Reader) ([]domain.RawRecord, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx":
		return ParseXLSX(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseCSV reads a headed CSV. Cells that look numeric become float64,
// except identifier-like digit strings (see typedCell).
func ParseCSV(r io.Reader) ([]domain.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rowsToRecords(rows)
}

// ParseXLSX reads the first worksheet of a workbook. Cells are read raw, so
// date cells arrive as Excel serials instead of locale-formatted text.
func ParseXLSX(r io.Reader) ([]domain.RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rowsToRecords(rows)
}

func rowsToRecords(rows [][]string) ([]domain.RawRecord, error) {
	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	records := make([]domain.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec := make(domain.RawRecord, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i >= len(row) {
				rec[key] = nil
				continue
			}
			rec[key] = typedCell(row[i])
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	return records, nil
}

func typedCell(cell string) any {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	if isIdentifier(s) {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// maxExactDigits is the longest digit run a float64 holds exactly.
const maxExactDigits = 15

// isIdentifier matches codes such as HS codes, IEC numbers or PINs that must
// keep leading zeros and every digit.
func isIdentifier(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return (len(s) > 1 && s[0] == '0') || len(s) > maxExactDigits
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

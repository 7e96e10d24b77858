package ingestion

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"pedigraph/internal/domain"
)

var (
	// ErrUnsupportedFormat is returned when a source file is not supported.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

	// Sentinel spellings collapsed to the canonical unknown token.
	unknownSpellings = map[string]struct{}{
		"":        {},
		"?":       {},
		"unknown": {},
		"n/a":     {},
		"na":      {},
		"null":    {},
		"none":    {},
	}
)

// NormalizeValue canonicalizes a raw string before it enters dimension
// construction: trims whitespace and collapses sentinel spellings to the
// unknown token.
func NormalizeValue(raw string) string {
	value := strings.TrimSpace(raw)
	if _, ok := unknownSpellings[strings.ToLower(value)]; ok {
		return domain.UnknownKey
	}
	return value
}

// Service reads raw pedigree exports into normalized records.
type Service struct{}

// NewService creates a new ingestion service.
func NewService() *Service {
	return &Service{}
}

// LoadFile reads a CSV or XLSX source file from disk. A missing or
// malformed file is fatal for the stage; no partial result is returned.
func (s *Service) LoadFile(path string) ([]domain.Record, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file %s: %w", path, err)
	}
	return s.Parse(filepath.Base(path), payload)
}

// Parse reads records from an in-memory CSV or XLSX payload.
func (s *Service) Parse(fileName string, payload []byte) ([]domain.Record, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("source file %s is empty", fileName)
	}

	table, err := parseTable(fileName, payload)
	if err != nil {
		return nil, err
	}
	if len(table.headers) == 0 {
		return nil, errors.New("no header row detected")
	}

	records := make([]domain.Record, 0, len(table.rows))
	for _, row := range table.rows {
		record := make(domain.Record, len(table.headers))
		for colIdx, header := range table.headers {
			if colIdx >= len(row) {
				continue
			}
			record[header] = NormalizeValue(row[colIdx])
		}
		records = append(records, record)
	}

	return records, nil
}

type tableData struct {
	headers []string
	rows    [][]string
}

func parseTable(fileName string, payload []byte) (tableData, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return parseCSV(payload)
	case ".xlsx":
		return parseExcel(payload)
	default:
		return tableData{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func parseCSV(payload []byte) (tableData, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return tableData{}, fmt.Errorf("failed to read csv: %w", err)
	}

	return normalizeTable(records)
}

func parseExcel(payload []byte) (tableData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return tableData{}, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return tableData{}, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return tableData{}, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}

	return normalizeTable(rows)
}

func normalizeTable(records [][]string) (tableData, error) {
	if len(records) == 0 {
		return tableData{}, errors.New("no rows found in file")
	}

	var headerRow []string
	var dataRows [][]string

	for _, row := range records {
		if len(cleanRow(row)) == 0 {
			continue
		}
		if headerRow == nil {
			headerRow = row
			continue
		}
		dataRows = append(dataRows, row)
	}

	if headerRow == nil {
		return tableData{}, errors.New("header row could not be detected")
	}

	headers := sanitizeHeaders(headerRow)
	for i := range dataRows {
		dataRows[i] = padRow(dataRows[i], len(headers))
	}

	return tableData{
		headers: headers,
		rows:    filterEmptyRows(dataRows),
	}, nil
}

func cleanRow(row []string) []string {
	var cleaned []string
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			cleaned = append(cleaned, cell)
		}
	}
	return cleaned
}

func sanitizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int)

	for idx, value := range raw {
		name := strings.ToLower(strings.TrimSpace(value))
		name = strings.ReplaceAll(name, " ", "_")
		name = strings.ReplaceAll(name, ".", "_")
		name = strings.ReplaceAll(name, "-", "_")
		name = strings.Trim(name, "_")
		if name == "" {
			name = fmt.Sprintf("column_%d", idx+1)
		}

		base := name
		count := seen[base]
		if count > 0 {
			name = fmt.Sprintf("%s_%d", base, count+1)
		}
		seen[base] = count + 1

		headers[idx] = name
	}

	return headers
}

func padRow(row []string, length int) []string {
	if len(row) >= length {
		return row[:length]
	}
	padded := make([]string, length)
	copy(padded, row)
	return padded
}

func filterEmptyRows(rows [][]string) [][]string {
	var filtered [][]string
	for _, row := range rows {
		keep := false
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				keep = true
				break
			}
		}
		if keep {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

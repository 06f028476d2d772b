package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ArowuTest/lotto645-backend/internal/engine"
)

// ErrMissingColumn is returned when a required CSV column cannot be found
var ErrMissingColumn = errors.New("required column not found in CSV")

var (
	drawNumberColumns = []string{"회차", "drawNumber", "draw_no", "drwNo", "round"}
	dateColumns       = []string{"날짜", "date", "drawDate", "drwNoDate"}
	bonusColumns      = []string{"보너스", "bonus", "bnusNo"}
)

func numberColumns(i int) []string {
	return []string{
		fmt.Sprintf("번호%d", i),
		fmt.Sprintf("n%d", i),
		fmt.Sprintf("num%d", i),
		fmt.Sprintf("number%d", i),
		fmt.Sprintf("drwtNo%d", i),
	}
}

// ParseDrawCSV reads a draw history CSV into raw records. The header row is
// required. Numeric validation is left to the draw store, so a bad cell
// still produces a record.
func ParseDrawCSV(r io.Reader) ([]engine.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	drawIdx := findColumnIndex(header, drawNumberColumns)
	if drawIdx == -1 {
		return nil, fmt.Errorf("%w: draw number", ErrMissingColumn)
	}
	numIdx := make([]int, 6)
	for i := range numIdx {
		numIdx[i] = findColumnIndex(header, numberColumns(i+1))
		if numIdx[i] == -1 {
			return nil, fmt.Errorf("%w: number %d", ErrMissingColumn, i+1)
		}
	}
	dateIdx := findColumnIndex(header, dateColumns)
	bonusIdx := findColumnIndex(header, bonusColumns)

	records := []engine.RawRecord{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, fmt.Errorf("failed to read row %d: %w", len(records)+1, err)
		}
		if isBlank(row) {
			continue
		}

		rec := engine.RawRecord{
			DrawNumber: cell(row, drawIdx),
			Date:       cell(row, dateIdx),
			Bonus:      cell(row, bonusIdx),
		}
		// cells past the end of a short row are left out so the store sees
		// the wrong count and rejects the row
		for _, idx := range numIdx {
			if idx < len(row) {
				rec.Numbers = append(rec.Numbers, strings.TrimSpace(row[idx]))
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseDrawCSVFile opens path and parses it with ParseDrawCSV
func ParseDrawCSVFile(path string) ([]engine.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return ParseDrawCSV(file)
}

// findColumnIndex finds the index of a column by one of its possible names
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

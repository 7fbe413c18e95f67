package model

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// loadCSV reads a numeric CSV dataset. A single leading non-numeric row is
// treated as a header and skipped. All data rows must have the same width.
func loadCSV(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	start := 0
	if !numericRow(records[0]) {
		start = 1
	}
	if start >= len(records) {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}

	width := len(records[start])
	rows := make([][]float64, 0, len(records)-start)
	for i := start; i < len(records); i++ {
		rec := records[i]
		if len(rec) != width {
			return nil, fmt.Errorf("dataset %s: row %d has %d columns, want %d", path, i+1, len(rec), width)
		}
		row := make([]float64, width)
		for j, cell := range rec {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("dataset %s: row %d col %d: %w", path, i+1, j+1, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func numericRow(rec []string) bool {
	for _, cell := range rec {
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
	}
	return len(rec) > 0
}

// splitXY separates feature columns from the trailing target column.
func splitXY(rows [][]float64) (x [][]float64, y []float64, err error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty dataset")
	}
	width := len(rows[0])
	if width < 2 {
		return nil, nil, fmt.Errorf("regression dataset needs at least 2 columns, got %d", width)
	}
	x = make([][]float64, len(rows))
	y = make([]float64, len(rows))
	for i, row := range rows {
		x[i] = row[:width-1]
		y[i] = row[width-1]
	}
	return x, y, nil
}

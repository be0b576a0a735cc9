package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// symbolColumns are accepted names for the identifier column, checked in order.
var symbolColumns = []string{"symbol", "isin", "ticker"}

const weightColumn = "weight"

// Load reads a portfolio CSV from disk. Any error here is fatal to the run:
// an unreadable or malformed portfolio makes the rest of the pipeline
// meaningless.
func Load(path string) (Portfolio, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".csv") {
		return nil, fmt.Errorf("unsupported portfolio file %s (want .csv)", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfolio file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads holdings from CSV data. The header must contain a weight column
// and one of the accepted symbol columns; column order does not matter.
// Weights may carry a trailing '%'. Rows with an empty symbol are skipped.
func Parse(r io.Reader) (Portfolio, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	symIdx := -1
	for _, col := range symbolColumns {
		if idx, ok := colIdx[col]; ok {
			symIdx = idx
			break
		}
	}
	if symIdx == -1 {
		return nil, fmt.Errorf("missing required column: one of %s", strings.Join(symbolColumns, ", "))
	}
	wIdx, ok := colIdx[weightColumn]
	if !ok {
		return nil, fmt.Errorf("missing required column: %s", weightColumn)
	}

	var pf Portfolio
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		if symIdx >= len(record) || wIdx >= len(record) {
			return nil, fmt.Errorf("row %d: too few fields", rowNum)
		}
		symbol := strings.TrimSpace(record[symIdx])
		if symbol == "" {
			continue
		}

		weight, err := ParseWeight(record[wIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", rowNum, symbol, err)
		}

		pf = append(pf, Holding{Symbol: symbol, Weight: weight})
	}

	if len(pf) == 0 {
		return nil, fmt.Errorf("portfolio is empty")
	}
	return pf, nil
}

// ParseWeight cleans a weight cell ("5.3%", " 5.3 ") into a plain number.
func ParseWeight(s string) (float64, error) {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	w, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid weight %q: %w", s, err)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, fmt.Errorf("invalid weight %q: not finite", s)
	}
	if w < 0 {
		return 0, fmt.Errorf("invalid weight %q: negative", s)
	}
	return w, nil
}

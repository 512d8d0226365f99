package game

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadCSV parses a board written row-major, top row first, one integer per
// cell: 0 empty, 1 opponent, 2 searcher.
func ReadCSV(r io.Reader) (*Board, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read board csv: %w", err)
	}

	grid := make([][]int, 0, len(records))
	for i, record := range records {
		row := make([]int, len(record))
		for j, field := range record {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			row[j] = v
		}
		grid = append(grid, row)
	}
	return FromGrid(grid)
}

func LoadCSV(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open board file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// WriteCSV writes the board in the format read by ReadCSV.
func WriteCSV(w io.Writer, b *Board) error {
	writer := csv.NewWriter(w)
	for _, row := range b.Grid() {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = strconv.Itoa(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write board row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// =============================================================================
// Cart Parser - XLSX Source Module
// =============================================================================
//
// This module lets carts be supplied as XLSX workbooks. A worksheet is turned
// into the same comma-separated text a CSV cart would contain, so the
// validation engine and the cart parser see no difference between the two.
//
// WORKSHEET LAYOUT:
//
//   | Column A     | Column B | Column C |
//   |--------------|----------|----------|
//   | Product name | Price    | Quantity |
//   | Mollis       | 9.00     | 2        |
//
//   Row 1 is the header. Rows are padded to the header width so that an empty
//   trailing cell is reported as an empty cell rather than a short row.
//
// LIMITATIONS:
//   Cell text containing a comma splits into two cells, exactly as it would
//   in a CSV cart.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/cart-parser/internal/csvparser"
)

// =============================================================================
// SOURCE CONFIGURATION
// =============================================================================

// Options configures how a workbook is read.
type Options struct {
	// Sheet is the worksheet to read.
	// Default: "" (the first sheet)
	Sheet string
}

// DefaultOptions returns the default read options.
func DefaultOptions() Options {
	return Options{}
}

// Source reads carts from XLSX workbooks.
type Source struct {
	options Options
}

// NewSource creates a Source with the default options.
func NewSource() *Source {
	return NewSourceWithOptions(DefaultOptions())
}

// NewSourceWithOptions creates a Source with custom options.
func NewSourceWithOptions(options Options) *Source {
	return &Source{options: options}
}

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// ReadSource opens the workbook at path and returns the worksheet as CSV text.
func (s *Source) ReadSource(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := s.options.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return "", fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to read rows: %w", err)
	}

	return RowsToCSV(rows), nil
}

// RowsToCSV joins worksheet rows into cart text.
// Every row is padded with empty cells to the width of the first row.
func RowsToCSV(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	width := len(rows[0])
	lines := make([]string, len(rows))

	for i, row := range rows {
		if isRowEmpty(row) {
			continue
		}
		cells := row
		if len(cells) < width {
			cells = make([]string, width)
			copy(cells, row)
		}
		lines[i] = csvparser.JoinCells(cells)
	}

	return strings.Join(lines, "\n")
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

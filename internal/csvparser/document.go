// =============================================================================
// Cart Parser - CSV Document Module
// =============================================================================
//
// This module splits raw cart text into lines and cells. It is shared by the
// validation engine and the cart parser so that both see exactly the same
// rows at exactly the same positions.
//
// FORMAT:
//   - One row per line, rows separated by "\n"
//   - Cells separated by ","
//   - No quoting or escaping: a comma always starts a new cell
//   - Leading and trailing whitespace around a line is ignored, so documents
//     may be indented
//
// The first line is always the header. Blank lines after the header carry no
// data and are skipped, but rows keep their real line position.
//
// =============================================================================

package csvparser

import (
	"strings"
)

// Delimiter separates cells within a line.
const Delimiter = ","

// =============================================================================
// DOCUMENT STRUCTURE
// =============================================================================

// Document is a cart CSV split into its header and data rows.
type Document struct {
	// Header is the trimmed first line.
	Header string

	// Rows contains every non-empty line after the header.
	Rows []Row
}

// Row is a single data line and its position in the source text.
type Row struct {
	// Index is the 0-based line position (the header is line 0).
	Index int

	// Line is the trimmed line text.
	Line string
}

// Cells splits the row into raw (untrimmed) cells.
func (r Row) Cells() []string {
	return SplitCells(r.Line)
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse splits content into a Document.
//
// PARAMETERS:
//   - content: The raw cart text.
//
// RETURNS:
//   - A pointer to the Document. Empty content yields an empty header and no rows.
func Parse(content string) *Document {
	lines := SplitLines(content)

	doc := &Document{
		Header: lines[0],
		Rows:   make([]Row, 0, len(lines)-1),
	}

	for i := 1; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}
		doc.Rows = append(doc.Rows, Row{Index: i, Line: lines[i]})
	}

	return doc
}

// SplitLines splits content on newlines and trims every line.
// The result always has at least one element.
func SplitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// SplitCells splits a line into cells without trimming them.
func SplitCells(line string) []string {
	return strings.Split(line, Delimiter)
}

// TrimCells returns a copy of cells with surrounding whitespace removed.
func TrimCells(cells []string) []string {
	trimmed := make([]string, len(cells))
	for i, cell := range cells {
		trimmed[i] = strings.TrimSpace(cell)
	}
	return trimmed
}

// JoinCells joins cells back into a single line.
func JoinCells(cells []string) string {
	return strings.Join(cells, Delimiter)
}

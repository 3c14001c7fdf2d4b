// =============================================================================
// Cart Parser - Cart Schema
// =============================================================================
//
// The cart schema is fixed: three columns, in this order.
//
//   | Column | Name         | Type   |
//   |--------|--------------|--------|
//   | 0      | Product name | string |
//   | 1      | Price        | number |
//   | 2      | Quantity     | number |
//
// =============================================================================

package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/cart-parser/internal/csvparser"
)

// ColumnType is the expected type of a column's cells.
type ColumnType string

const (
	// TypeString cells must be nonempty after trimming.
	TypeString ColumnType = "string"

	// TypeNumber cells must parse as a finite number greater than zero.
	TypeNumber ColumnType = "number"
)

// Column describes one column of the cart schema.
type Column struct {
	// Name is the exact header text expected for this column.
	Name string

	// Type is the expected cell type.
	Type ColumnType
}

// Schema is an ordered list of column definitions.
type Schema []Column

// Column indices within the cart schema.
const (
	ColumnName     = 0
	ColumnPrice    = 1
	ColumnQuantity = 2
)

var cartSchema = Schema{
	{Name: "Product name", Type: TypeString},
	{Name: "Price", Type: TypeNumber},
	{Name: "Quantity", Type: TypeNumber},
}

// CartSchema returns a copy of the fixed cart schema.
func CartSchema() Schema {
	schema := make(Schema, len(cartSchema))
	copy(schema, cartSchema)
	return schema
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, column := range s {
		names[i] = column.Name
	}
	return names
}

// Header returns the header line the schema expects.
func (s Schema) Header() string {
	return csvparser.JoinCells(s.Names())
}

// ParseNumber parses a number cell. Surrounding whitespace is ignored.
// Digit separators ("1_000") and hexadecimal forms ("0x1p4") are rejected.
func ParseNumber(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.ContainsRune(trimmed, '_') || hasHexPrefix(trimmed) {
		return 0, fmt.Errorf("number %q is not a decimal number", raw)
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("number %q is not finite", raw)
	}
	return value, nil
}

// hasHexPrefix reports whether s starts with an optionally signed 0x or 0X.
func hasHexPrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// isPositiveNumber reports whether raw is a finite number greater than zero.
func isPositiveNumber(raw string) bool {
	value, err := ParseNumber(raw)
	return err == nil && value > 0
}

// isNonEmptyString reports whether raw has content after trimming.
func isNonEmptyString(raw string) bool {
	return strings.TrimSpace(raw) != ""
}

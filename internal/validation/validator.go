// =============================================================================
// Cart Parser - Validation Engine
// =============================================================================
//
// This module classifies a cart CSV document as well-formed or malformed.
// It checks the document against the fixed cart schema at three levels:
//   1. Header-level: the header line must name the schema columns in order
//   2. Row-level: every data row must have exactly one cell per column
//   3. Cell-level: every cell must match its column type
//
// ERROR HANDLING:
//   - Errors are collected, not thrown
//   - Each error carries its kind, row, column and a human-readable message
//   - A row with the wrong shape gets one row error and no cell errors
//   - All rows are checked; validation never stops at the first bad row
//
// ERROR CONSTRUCTION:
//   Every error is built through an ErrorFactory. The default factory simply
//   allocates a ValidationError; tests may pass their own to record calls.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/cart-parser/internal/csvparser"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ErrorKind identifies which check produced a ValidationError.
type ErrorKind string

const (
	// KindHeader errors concern the header line.
	KindHeader ErrorKind = "header"

	// KindRow errors concern the shape (cell count) of a data row.
	KindRow ErrorKind = "row"

	// KindCell errors concern the content of a single cell.
	KindCell ErrorKind = "cell"
)

// NoColumn is used as the Column of errors that are not cell-specific.
const NoColumn = -1

// ValidationError represents a single validation error.
type ValidationError struct {
	// Kind is the check that failed.
	Kind ErrorKind `json:"type" yaml:"type"`

	// Row is the 0-based line position of the offending line (0 = header).
	Row int `json:"row" yaml:"row"`

	// Column is the 0-based cell position, or NoColumn.
	Column int `json:"column" yaml:"column"`

	// Message is a human-readable error message.
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] row %d, column %d: %s",
		strings.ToUpper(string(e.Kind)),
		e.Row,
		e.Column,
		e.Message,
	)
}

// ErrorFactory constructs a ValidationError.
type ErrorFactory func(kind ErrorKind, row, column int, message string) *ValidationError

// NewValidationError is the default ErrorFactory.
func NewValidationError(kind ErrorKind, row, column int, message string) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Row:     row,
		Column:  column,
		Message: message,
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks cart documents against the cart schema.
// A Validator holds no per-call state and is safe for concurrent use.
type Validator struct {
	schema  Schema
	options ValidationOptions
}

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// ErrorFactory builds every reported error.
	// Default: NewValidationError
	ErrorFactory ErrorFactory
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		ErrorFactory: NewValidationError,
	}
}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return NewValidatorWithOptions(DefaultValidationOptions())
}

// NewValidatorWithOptions creates a new Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	if options.ErrorFactory == nil {
		options.ErrorFactory = NewValidationError
	}
	return &Validator{
		schema:  CartSchema(),
		options: options,
	}
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate validates content with the default validator.
//
// RETURNS:
//   - The validation errors in the order they were found. The slice is empty
//     (not nil) when the document is valid.
func Validate(content string) []*ValidationError {
	return NewValidator().Validate(content)
}

// Validate checks content and returns every error found.
func (v *Validator) Validate(content string) []*ValidationError {
	errors := make([]*ValidationError, 0)
	doc := csvparser.Parse(content)

	if err := v.validateHeader(doc.Header); err != nil {
		errors = append(errors, err)
	}

	for _, row := range doc.Rows {
		errors = append(errors, v.validateRow(row)...)
	}

	return errors
}

// validateHeader compares the whole header line against the expected header.
// At most one error is produced, describing the first differing column.
func (v *Validator) validateHeader(header string) *ValidationError {
	received := csvparser.TrimCells(csvparser.SplitCells(header))
	if csvparser.JoinCells(received) == v.schema.Header() {
		return nil
	}

	expectedName, receivedName := v.firstHeaderMismatch(received)

	return v.options.ErrorFactory(
		KindHeader,
		0,
		0,
		fmt.Sprintf("Expected header to be named \"%s\" but received %s.", expectedName, receivedName),
	)
}

// firstHeaderMismatch finds the first column whose received name differs
// from the schema. Extra trailing columns are reported against the whole
// expected header line.
func (v *Validator) firstHeaderMismatch(received []string) (string, string) {
	for i, column := range v.schema {
		if i >= len(received) {
			return column.Name, ""
		}
		if received[i] != column.Name {
			return column.Name, received[i]
		}
	}
	return v.schema.Header(), csvparser.JoinCells(received)
}

// validateRow checks a data row's shape and, if the shape is right, its cells.
func (v *Validator) validateRow(row csvparser.Row) []*ValidationError {
	cells := row.Cells()

	if len(cells) != len(v.schema) {
		return []*ValidationError{v.options.ErrorFactory(
			KindRow,
			row.Index,
			NoColumn,
			fmt.Sprintf("Expected row to have %d cells but received %d.", len(v.schema), len(cells)),
		)}
	}

	var errors []*ValidationError
	for c, column := range v.schema {
		if err := v.validateCell(row.Index, c, column, cells[c]); err != nil {
			errors = append(errors, err)
		}
	}
	return errors
}

// validateCell checks a single cell against its column type.
func (v *Validator) validateCell(row, col int, column Column, raw string) *ValidationError {
	switch column.Type {
	case TypeString:
		if !isNonEmptyString(raw) {
			return v.options.ErrorFactory(
				KindCell, row, col,
				fmt.Sprintf("Expected cell to be a nonempty string but received \"%s\".", raw),
			)
		}

	case TypeNumber:
		if !isPositiveNumber(raw) {
			return v.options.ErrorFactory(
				KindCell, row, col,
				fmt.Sprintf("Expected cell to be a positive number but received \"%s\".", raw),
			)
		}
	}

	return nil
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

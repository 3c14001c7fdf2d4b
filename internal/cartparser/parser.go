// =============================================================================
// Cart Parser - Parser/Aggregator Module
// =============================================================================
//
// This module turns a validated cart CSV into line items and an order total.
//
// PARSING PIPELINE:
//   1. Read the source text through the SourceReader
//   2. Validate the text against the cart schema
//   3. Fail with ErrValidationFailed if any validation error was found
//   4. Convert every data row after the header into a LineItem
//   5. Sum price * quantity across all items
//
// ERROR HANDLING:
//   - Read errors are returned exactly as the SourceReader produced them
//   - Validation failure is a single sentinel; the structured errors are only
//     available from the validator, never embedded in the returned error
//
// =============================================================================

package cartparser

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ginjaninja78/cart-parser/internal/csvparser"
	"github.com/ginjaninja78/cart-parser/internal/types"
	"github.com/ginjaninja78/cart-parser/internal/validation"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrValidationFailed is returned by Parse when the document has one or more
// validation errors.
var ErrValidationFailed = errors.New("Validation failed!")

// ErrMalformedLine is returned by ParseLine when a line does not have one
// cell per schema column.
var ErrMalformedLine = errors.New("malformed cart line")

// =============================================================================
// PARSER
// =============================================================================

// Parser parses cart files into line items.
// A Parser holds no per-call state; concurrent calls do not interfere.
type Parser struct {
	source    SourceReader
	ids       IDGenerator
	validator *validation.Validator
	logger    *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(p *Parser) {
		p.ids = ids
	}
}

// WithValidator replaces the default validator.
func WithValidator(v *validation.Validator) Option {
	return func(p *Parser) {
		p.validator = v
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a Parser reading sources through source.
func New(source SourceReader, opts ...Option) *Parser {
	p := &Parser{
		source:    source,
		ids:       UUIDGenerator{},
		validator: validation.NewValidator(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// =============================================================================
// MAIN PARSING FUNCTIONS
// =============================================================================

// Parse reads the cart at path and returns its items and total.
//
// RETURNS:
//   - The ParseResult on success.
//   - The SourceReader's error unchanged if the file cannot be read.
//   - ErrValidationFailed if the content does not validate.
func (p *Parser) Parse(path string) (*types.ParseResult, error) {
	content, err := p.ReadSource(path)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("read cart source", zap.String("path", path), zap.Int("bytes", len(content)))

	return p.ParseContent(content)
}

// ParseContent validates and parses in-memory cart text.
func (p *Parser) ParseContent(content string) (*types.ParseResult, error) {
	if errs := p.validator.Validate(content); len(errs) > 0 {
		p.logger.Debug("cart validation failed", zap.Int("errors", len(errs)))
		return nil, ErrValidationFailed
	}

	doc := csvparser.Parse(content)
	items := make([]types.LineItem, 0, len(doc.Rows))

	for _, row := range doc.Rows {
		item, err := p.ParseLine(row.Line)
		if err != nil {
			// Unreachable for validated content.
			return nil, fmt.Errorf("row %d: %w", row.Index, err)
		}
		items = append(items, item)
	}

	result := &types.ParseResult{
		Items: items,
		Total: CalcTotal(items),
	}

	p.logger.Debug("parsed cart", zap.Int("items", len(result.Items)), zap.Float64("total", result.Total))

	return result, nil
}

// Validator returns the validator the parser checks content with.
func (p *Parser) Validator() *validation.Validator {
	return p.validator
}

// ReadSource returns the raw text of the cart at path.
func (p *Parser) ReadSource(path string) (string, error) {
	return p.source.ReadSource(path)
}

// ParseLine converts a single data line into a LineItem with a fresh ID.
//
// PARAMETERS:
//   - line: A comma-separated line with name, price and quantity.
//
// RETURNS:
//   - The LineItem.
//   - ErrMalformedLine if the cell count is wrong, or a parse error if a
//     number cell is not numeric.
func (p *Parser) ParseLine(line string) (types.LineItem, error) {
	cells := csvparser.TrimCells(csvparser.SplitCells(line))
	if len(cells) != len(validation.CartSchema()) {
		return types.LineItem{}, fmt.Errorf("%w: expected %d cells but received %d",
			ErrMalformedLine, len(validation.CartSchema()), len(cells))
	}

	price, err := validation.ParseNumber(cells[validation.ColumnPrice])
	if err != nil {
		return types.LineItem{}, fmt.Errorf("invalid price: %w", err)
	}

	quantity, err := validation.ParseNumber(cells[validation.ColumnQuantity])
	if err != nil {
		return types.LineItem{}, fmt.Errorf("invalid quantity: %w", err)
	}

	return types.LineItem{
		ID:       p.ids.NewID(),
		Name:     cells[validation.ColumnName],
		Price:    price,
		Quantity: quantity,
	}, nil
}

// CalcTotal returns the sum of price * quantity over items.
// It returns 0 for no items.
func CalcTotal(items []types.LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

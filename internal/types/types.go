// =============================================================================
// Cart Parser - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - cartparser
//   - converter
//   - report
//   - storage
//
// =============================================================================

package types

// =============================================================================
// LINE ITEM TYPES
// =============================================================================

// LineItem represents a single validated cart entry.
// One LineItem is created per data row of the cart CSV.
type LineItem struct {
	// ID is a freshly generated unique identifier (opaque).
	ID string `json:"id" yaml:"id" xml:"id,attr" csv:"id"`

	// Name is the product name taken from the first column.
	Name string `json:"name" yaml:"name" xml:"name" csv:"name"`

	// Price is the positive unit price taken from the second column.
	Price float64 `json:"price" yaml:"price" xml:"price" csv:"price"`

	// Quantity is the positive quantity taken from the third column.
	Quantity float64 `json:"quantity" yaml:"quantity" xml:"quantity" csv:"quantity"`
}

// Subtotal returns price multiplied by quantity.
func (li LineItem) Subtotal() float64 {
	return li.Price * li.Quantity
}

// ParseResult is the outcome of a successful cart parse.
type ParseResult struct {
	// Items contains the line items in document order.
	Items []LineItem `json:"items" yaml:"items" xml:"items>item"`

	// Total is the sum of price * quantity across Items.
	Total float64 `json:"total" yaml:"total" xml:"total"`
}

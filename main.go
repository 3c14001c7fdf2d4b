// =============================================================================
// Cart Parser - Main Entry Point
// =============================================================================
//
// USAGE:
//   cartparser validate <file>  - Report every validation error in a cart
//   cartparser parse <file>     - Print the line items and total of a cart
//   cartparser process          - Process all carts in the input directory
//   cartparser version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Validation, parsing and processing (not for external import)
//   - pkg/           : Shared utilities (file management, logging)
//   - samples/       : Example cart files
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/cart-parser/cmd"
)

func main() {
	cmd.Execute()
}

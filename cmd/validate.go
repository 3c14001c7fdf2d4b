// =============================================================================
// Cart Parser - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   cartparser validate <file> [file...]
//
// Every file is read and checked against the cart schema. All validation
// errors are printed with their row and column. The command fails when any
// file is invalid or cannot be read.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/cart-parser/internal/cartparser"
	"github.com/ginjaninja78/cart-parser/internal/validation"
)

// newValidateCmd creates the 'validate' command.
func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file> [file...]",
		Short: "Validate cart files and report every error",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, args)
		},
	}
}

// runValidate validates each file and prints the result.
func runValidate(cmd *cobra.Command, opts *rootOptions, paths []string) error {
	out := cmd.OutOrStdout()
	source := newSource()
	validator := validation.NewValidator()
	invalid := 0

	for _, path := range paths {
		content, err := source.ReadSource(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		errs := validator.Validate(content)
		opts.logger().Debug("validated cart", zap.String("file", path), zap.Int("errors", len(errs)))

		if len(errs) == 0 {
			fmt.Fprintf(out, "%s: valid\n", path)
			continue
		}

		invalid++
		fmt.Fprintf(out, "%s: %s\n", path, validation.FormatErrors(errs))
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d file(s) invalid: %w", invalid, len(paths), cartparser.ErrValidationFailed)
	}
	return nil
}

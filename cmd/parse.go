// =============================================================================
// Cart Parser - Parse Command
// =============================================================================
//
// COMMAND USAGE:
//   cartparser parse <file> [flags]
//
// FLAGS:
//   --format, -f : Output format (json, yaml, xml, csv, xlsx).
//                  Defaults to output_format from the configuration.
//   --output, -o : Write to this file instead of standard output.
//                  Required for xlsx.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cart-parser/internal/cartparser"
	"github.com/ginjaninja78/cart-parser/internal/report"
	"github.com/ginjaninja78/cart-parser/internal/types"
)

// parseFlags holds the flags of the parse command.
type parseFlags struct {
	format string
	output string
}

// newParseCmd creates the 'parse' command.
func newParseCmd(opts *rootOptions) *cobra.Command {
	flags := &parseFlags{}

	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a cart into line items and a total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, flags, args[0])
		},
	}

	parseCmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: json, yaml, xml, csv or xlsx")
	parseCmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default is standard output)")

	return parseCmd
}

// runParse parses one cart and renders it.
func runParse(cmd *cobra.Command, opts *rootOptions, flags *parseFlags, path string) error {
	format := opts.config.Format()
	if flags.format != "" {
		f, err := report.ParseFormat(flags.format)
		if err != nil {
			return err
		}
		format = f
	}
	if format == report.FormatXLSX && flags.output == "" {
		return fmt.Errorf("xlsx output requires --output")
	}

	parser := cartparser.New(newSource(), cartparser.WithLogger(opts.logger()))
	result, err := parser.Parse(path)
	if err != nil {
		return err
	}

	if flags.output == "" {
		return report.Write(cmd.OutOrStdout(), result, format)
	}
	return writeReportFile(flags.output, result, format)
}

// writeReportFile renders result into the file at path. The file is removed
// when rendering fails.
func writeReportFile(path string, result *types.ParseResult, format report.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := report.Write(f, result, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

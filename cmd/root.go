// =============================================================================
// Cart Parser - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   cartparser
//   ├── validate <file>...   check carts and print every validation error
//   ├── parse <file>         print or write the parsed cart
//   ├── process              process every cart in the input directory
//   └── version              print version information
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the configuration (--config, CARTPARSER_* env, .env)
//   2. Initializes the zap logger (--verbose forces debug level)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/cart-parser/internal/cartparser"
	"github.com/ginjaninja78/cart-parser/internal/config"
	"github.com/ginjaninja78/cart-parser/internal/xlsxparser"
	"github.com/ginjaninja78/cart-parser/pkg/logger"
	"github.com/ginjaninja78/cart-parser/pkg/utils"
)

// =============================================================================
// SHARED STATE
// =============================================================================

// rootOptions holds the persistent flags and what PersistentPreRunE loads.
type rootOptions struct {
	// cfgFile is the path to the main configuration file.
	cfgFile string

	// verbose enables debug logging.
	verbose bool

	// config is populated before any subcommand runs.
	config *config.MainConfig
}

// logger returns the process-wide logger.
func (o *rootOptions) logger() *zap.Logger {
	return logger.Get()
}

// initialize loads the configuration and sets up logging.
func (o *rootOptions) initialize() error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if o.verbose {
		level = "debug"
	}
	if err := logger.Init(level, o.verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	o.config = cfg
	logger.Get().Debug("configuration loaded",
		zap.String("config", o.cfgFile),
		zap.String("input_dir", cfg.InputDir),
		zap.String("output_format", cfg.OutputFormat))
	return nil
}

// newSource returns the reader for cart files: XLSX workbooks through
// excelize and everything else as plain text.
func newSource() cartparser.SourceReader {
	return cartparser.NewExtensionSource(utils.NewFileSource()).
		Register(".xlsx", xlsxparser.NewSource())
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "cartparser",
		Short: "Cart Parser - Validate shopping-cart CSV files and compute order totals",
		Long: `Cart Parser validates shopping-cart files against a fixed schema
(Product name, Price, Quantity), reports every problem it finds with its
position, and turns valid carts into line items with an order total.

Example Usage:
  cartparser validate cart.csv                 # List every validation error
  cartparser parse cart.csv --format yaml      # Print the parsed cart
  cartparser parse cart.xlsx -o cart.json      # Parse a workbook into a file
  cartparser process --config ./config.yaml    # Process the input directory`,

		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initialize()
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&opts.cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&opts.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.AddCommand(
		newValidateCmd(opts),
		newParseCmd(opts),
		newProcessCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. This is called by main.main().
func Execute() {
	err := NewRootCmd().Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// Cart Parser - Converter Module
// =============================================================================
//
// This module runs the processing pipeline for a single cart file.
//
// CONVERSION PIPELINE:
//   1. Read the cart source (CSV or XLSX)
//   2. Validate and parse it into line items and a total
//   3. On validation failure, write the detailed errors to an error log
//   4. Render the report in the configured format into the output directory
//   5. Store the cart in the configured sink, if any
//   6. Archive the input file and a copy of the report
//
// CONCURRENCY:
//   A Converter holds no per-file state. One instance can process many files
//   from separate goroutines.
//
// =============================================================================

package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/cart-parser/internal/cartparser"
	"github.com/ginjaninja78/cart-parser/internal/report"
	"github.com/ginjaninja78/cart-parser/internal/storage"
	"github.com/ginjaninja78/cart-parser/internal/types"
	"github.com/ginjaninja78/cart-parser/internal/validation"
	"github.com/ginjaninja78/cart-parser/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated report.
	// This is empty if processing failed.
	OutputFile string

	// ErrorLog is the path to the validation error log, if one was written.
	ErrorLog string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Cart is the parsed cart. This is nil if parsing failed.
	Cart *types.ParseResult

	// ValidationErrors holds the detailed errors when validation failed.
	ValidationErrors []*validation.ValidationError

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// LineItems is the number of line items parsed.
	LineItems int

	// Total is the cart total.
	Total float64

	// ValidationErrors is the number of validation errors encountered.
	ValidationErrors int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options configures a Converter.
type Options struct {
	// Format is the report format.
	// Default: json
	Format report.Format

	// NameFormat is the report file name pattern (see FileManager.GenerateOutputFileName).
	// Default: "{original}_{timestamp}"
	NameFormat string

	// Sink receives every successfully parsed cart. Nil disables storage.
	Sink storage.CartWriter

	// Logger receives progress and diagnostics.
	// Default: a no-op logger
	Logger *zap.Logger
}

// DefaultOptions returns the default converter options.
func DefaultOptions() Options {
	return Options{
		Format:     report.FormatJSON,
		NameFormat: "{original}_{timestamp}",
		Logger:     zap.NewNop(),
	}
}

// Converter processes cart files.
type Converter struct {
	parser    *cartparser.Parser
	files     *utils.FileManager
	options   Options
	logger    *zap.Logger
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter.
//
// PARAMETERS:
//   - parser: The cart parser, including its source reader.
//   - files: The file manager for output naming, logs and archival.
//   - options: Converter options. Zero fields fall back to the defaults.
func New(parser *cartparser.Parser, files *utils.FileManager, options Options) *Converter {
	defaults := DefaultOptions()
	if options.Format == "" {
		options.Format = defaults.Format
	}
	if options.NameFormat == "" {
		options.NameFormat = defaults.NameFormat
	}
	if options.Logger == nil {
		options.Logger = defaults.Logger
	}

	return &Converter{
		parser:  parser,
		files:   files,
		options: options,
		logger:  options.Logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline for the file at path.
func (c *Converter) Run(ctx context.Context, path string) (result Result) {
	startTime := time.Now()
	result.FilePath = path
	log := c.logger.With(zap.String("file", filepath.Base(path)))

	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	log.Info("processing cart")

	// =========================================================================
	// STEP 1: READ SOURCE
	// =========================================================================

	content, err := c.parser.ReadSource(path)
	if err != nil {
		result.Error = fmt.Errorf("failed to read cart: %w", err)
		return result
	}

	// =========================================================================
	// STEP 2: VALIDATE AND PARSE
	// =========================================================================

	cart, err := c.parser.ParseContent(content)
	if errors.Is(err, cartparser.ErrValidationFailed) {
		result.Error = err
		result.ValidationErrors = c.parser.Validator().Validate(content)
		result.Stats.ValidationErrors = len(result.ValidationErrors)

		for _, ve := range result.ValidationErrors {
			log.Warn("validation error",
				zap.String("type", string(ve.Kind)),
				zap.Int("row", ve.Row),
				zap.Int("column", ve.Column),
				zap.String("message", ve.Message))
		}

		// =====================================================================
		// STEP 3: WRITE ERROR LOG
		// =====================================================================

		logPath, logErr := c.files.WriteErrorLog(errorLogEntries(path, result.ValidationErrors))
		if logErr != nil {
			log.Error("failed to write error log", zap.Error(logErr))
		}
		result.ErrorLog = logPath
		return result
	}
	if err != nil {
		result.Error = fmt.Errorf("failed to parse cart: %w", err)
		return result
	}

	result.Cart = cart
	result.Stats.LineItems = len(cart.Items)
	result.Stats.Total = cart.Total

	// =========================================================================
	// STEP 4: WRITE REPORT
	// =========================================================================

	outputPath, err := c.writeOutput(path, cart)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}
	result.OutputFile = outputPath
	log.Info("wrote report", zap.String("output", outputPath))

	// =========================================================================
	// STEP 5: STORE
	// =========================================================================

	if c.options.Sink != nil {
		if err := c.options.Sink.WriteCart(ctx, path, cart); err != nil {
			result.Error = fmt.Errorf("failed to store cart: %w", err)
			return result
		}
		log.Debug("stored cart")
	}

	// =========================================================================
	// STEP 6: ARCHIVE FILES
	// =========================================================================

	if err := c.archiveFiles(path, outputPath); err != nil {
		// Archival failures do not fail the cart.
		log.Warn("failed to archive files", zap.Error(err))
	}

	result.Success = true
	log.Info("processed cart",
		zap.Int("items", result.Stats.LineItems),
		zap.Float64("total", result.Stats.Total))

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeOutput renders the report into the output directory.
func (c *Converter) writeOutput(inputPath string, cart *types.ParseResult) (string, error) {
	fileName := c.files.GenerateOutputFileName(c.options.NameFormat, inputPath, c.options.Format.Extension())
	outputPath := filepath.Join(c.files.OutputDir, fileName)

	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if err := report.Write(f, cart, c.options.Format); err != nil {
		f.Close()
		os.Remove(outputPath)
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return outputPath, nil
}

// archiveFiles moves the input into the input archive and copies the report
// into the output archive.
func (c *Converter) archiveFiles(inputPath, outputPath string) error {
	if _, err := c.files.ArchiveInputFile(inputPath); err != nil {
		return err
	}
	if _, err := c.files.ArchiveOutputFile(outputPath); err != nil {
		return err
	}
	return nil
}

// errorLogEntries converts validation errors into error log entries.
func errorLogEntries(path string, errs []*validation.ValidationError) []utils.ErrorLogEntry {
	entries := make([]utils.ErrorLogEntry, 0, len(errs))
	now := time.Now()

	for _, ve := range errs {
		entries = append(entries, utils.ErrorLogEntry{
			Timestamp:    now,
			FileName:     filepath.Base(path),
			ErrorType:    string(ve.Kind),
			ErrorMessage: ve.Message,
			Row:          ve.Row,
			Column:       ve.Column,
		})
	}

	return entries
}

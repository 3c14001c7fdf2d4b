// =============================================================================
// Cart Parser - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the converter pipeline
// for every cart in the input directory.
//
// COMMAND USAGE:
//   cartparser process [flags]
//
// FLAGS:
//   --file : Process only this file instead of scanning the input directory
//
// PROCESSING PIPELINE:
//   1. Create the input, output and archive directories
//   2. Discover *.csv and *.xlsx files in the input directory
//   3. Connect to PostgreSQL when postgres_dsn is set
//   4. Process files concurrently, at most max_concurrency at a time
//   5. Print a line per file and write the processing summary log
//
// With continue_on_error disabled, files that have not started yet are
// skipped after the first failure and the command fails.
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/cart-parser/internal/cartparser"
	"github.com/ginjaninja78/cart-parser/internal/converter"
	"github.com/ginjaninja78/cart-parser/internal/storage"
	"github.com/ginjaninja78/cart-parser/pkg/utils"
)

// errProcessingStopped is returned when continue_on_error is disabled and a
// file failed.
var errProcessingStopped = errors.New("processing stopped after a failed file")

// processFlags holds the flags of the process command.
type processFlags struct {
	file string
}

// newProcessCmd creates the 'process' command.
func newProcessCmd(opts *rootOptions) *cobra.Command {
	flags := &processFlags{}

	processCmd := &cobra.Command{
		Use:   "process",
		Short: "Process every cart in the input directory",
		Long: `The process command scans the input directory for cart files (*.csv,
*.xlsx), validates and parses each one, and writes a report in the configured
output format to the output directory.

On successful processing:
  - The report is placed in the output directory
  - The original cart is moved to the input archive
  - A copy of the report is placed in the output archive
  - The cart is stored in PostgreSQL when postgres_dsn is set

On validation error:
  - An error log listing every problem is created in the output directory
  - The original cart remains in the input directory`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, opts, flags)
		},
	}

	processCmd.Flags().StringVar(&flags.file, "file", "", "Process only this file")

	return processCmd
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the pipeline over all input files.
func runProcess(cmd *cobra.Command, opts *rootOptions, flags *processFlags) error {
	startTime := time.Now()
	cfg := opts.config
	log := opts.logger()
	out := cmd.OutOrStdout()

	// =========================================================================
	// STEP 1: PREPARE DIRECTORIES
	// =========================================================================

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir)
	fm.ArchiveOnSuccess = cfg.ArchiveOnSuccess
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if flags.file != "" {
		inputFiles = []string{flags.file}
	} else {
		files, err := fm.DiscoverInputFiles()
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
		inputFiles = files
	}

	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No cart files found in the input directory.")
		return nil
	}

	log.Info("discovered input files", zap.Int("count", len(inputFiles)))

	// =========================================================================
	// STEP 3: CONNECT STORAGE
	// =========================================================================

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var sink storage.CartWriter
	if cfg.PostgresDSN != "" {
		pw, err := storage.NewPostgresWriter(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer pw.Close()
		sink = pw
	}

	conv := converter.New(
		cartparser.New(newSource(), cartparser.WithLogger(log)),
		fm,
		converter.Options{
			Format:     cfg.Format(),
			NameFormat: cfg.OutputNameFormat,
			Sink:       sink,
			Logger:     log,
		},
	)

	// =========================================================================
	// STEP 4: PROCESS FILES CONCURRENTLY
	// =========================================================================

	results := processFiles(ctx, cancel, conv, inputFiles, cfg.MaxConcurrency, cfg.ContinueOnError)

	// =========================================================================
	// STEP 5: SUMMARY
	// =========================================================================

	summary := utils.ProcessingSummary{
		StartTime:  startTime,
		TotalFiles: len(inputFiles),
	}

	for _, result := range results {
		summary.ValidationErrors += result.Stats.ValidationErrors
		if result.Success {
			summary.SuccessfulFiles++
			summary.TotalLineItems += result.Stats.LineItems
			summary.GrandTotal += result.Stats.Total
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:   result.FilePath,
				OutputFile:  result.OutputFile,
				LineItems:   result.Stats.LineItems,
				Total:       result.Stats.Total,
				ProcessTime: result.Stats.ProcessingTime,
			})
			fmt.Fprintf(out, "  ✓ %s -> %s\n", filepath.Base(result.FilePath), result.OutputFile)
			continue
		}

		summary.FailedFiles++
		summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
			InputFile:    result.FilePath,
			ErrorMessage: result.Error.Error(),
		})
		fmt.Fprintf(out, "  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
	}
	summary.EndTime = time.Now()

	summaryPath, err := fm.WriteSummaryLog(summary)
	if err != nil {
		log.Error("failed to write summary log", zap.Error(err))
	}

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Grand total:     %.2f\n", summary.GrandTotal)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(startTime))
	if summaryPath != "" {
		fmt.Fprintf(out, "Summary:         %s\n", summaryPath)
	}

	if summary.FailedFiles > 0 && !cfg.ContinueOnError {
		return errProcessingStopped
	}
	return nil
}

// processFiles runs conv over files with at most limit files in flight.
// Files start in input order and results are returned in input order. With
// continueOnError disabled, the first failure cancels ctx and files not yet
// started fail with ctx.Err().
func processFiles(ctx context.Context, cancel context.CancelFunc, conv *converter.Converter, files []string, limit int, continueOnError bool) []converter.Result {
	if limit < 1 {
		limit = 1
	}

	results := make([]converter.Result, len(files))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, file := range files {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				results[i] = converter.Result{FilePath: path, Error: fmt.Errorf("skipped: %w", err)}
				return
			}

			results[i] = conv.Run(ctx, path)
			if !results[i].Success && !continueOnError {
				cancel()
			}
		}(i, file)
	}

	wg.Wait()
	return results
}

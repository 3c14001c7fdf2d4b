// =============================================================================
// Cart Parser - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the cart parser:
//   - Reading cart sources from disk
//   - Input discovery
//   - File archival (moving processed carts)
//   - Output naming
//   - Error log and summary log generation
//
// ARCHIVAL STRATEGY:
//   - Input carts are moved to input_archive after successful processing
//   - Output files are copied to output_archive for long-term storage
//   - Failed carts remain in their original location
//   - Error logs are created in the output directory
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE SOURCE
// =============================================================================

// FileSource reads cart text from the local file system.
// Each call opens and releases the file; no handle is held between calls.
type FileSource struct{}

// NewFileSource creates a FileSource.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// ReadSource returns the content of the file at path.
// The os error is returned unchanged.
func (s *FileSource) ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// =============================================================================
// FILE MANAGER
// =============================================================================

// DefaultInputPatterns are the glob patterns scanned when none are given.
var DefaultInputPatterns = []string{"*.csv", "*.xlsx"}

// FileManager handles file operations for batch processing.
type FileManager struct {
	// InputDir is the directory where input carts are placed.
	InputDir string

	// OutputDir is the directory where results and logs are placed.
	OutputDir string

	// InputArchiveDir is the directory for archived input carts.
	InputArchiveDir string

	// OutputArchiveDir is the directory for archived output files.
	OutputArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in archives.
	// Example: input_archive/2024/01/15/cart.csv
	UseTimestampSubdirs bool

	// ArchiveOnSuccess determines whether to archive files after successful processing.
	ArchiveOnSuccess bool

	// now is the clock; replaced in tests.
	now func() time.Time
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir, outputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:            inputDir,
		OutputDir:           outputDir,
		InputArchiveDir:     inputArchiveDir,
		OutputArchiveDir:    outputArchiveDir,
		UseTimestampSubdirs: false,
		ArchiveOnSuccess:    true,
		now:                 time.Now,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{
		fm.InputDir,
		fm.OutputDir,
		fm.InputArchiveDir,
		fm.OutputArchiveDir,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the input directory for files matching any of
// the glob patterns. DefaultInputPatterns is used when none are given.
//
// RETURNS:
//   - The matching file paths, sorted and without duplicates.
//   - An error if a pattern is malformed.
func (fm *FileManager) DiscoverInputFiles(patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultInputPatterns
	}

	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		files, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan input directory: %w", err)
		}

		for _, file := range files {
			info, err := os.Stat(file)
			if err != nil || info.IsDir() || seen[file] {
				continue
			}
			seen[file] = true
			result = append(result, file)
		}
	}

	sort.Strings(result)
	return result, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves an input file to the archive directory.
//
// RETURNS:
//   - The path to the archived file (or the original path when archiving
//     is disabled).
//   - An error if archival fails.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := fm.getArchivePath(fm.InputArchiveDir, filePath)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Cross-device moves fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// ArchiveOutputFile copies an output file to the archive directory.
// Output files are copied, not moved, so they remain in the output directory.
func (fm *FileManager) ArchiveOutputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := fm.getArchivePath(fm.OutputArchiveDir, filePath)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := copyFile(filePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to copy file to archive: %w", err)
	}

	return archivePath, nil
}

// getArchivePath constructs the archive path for a file.
func (fm *FileManager) getArchivePath(archiveDir, filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := fm.now()
		return filepath.Join(
			archiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}

	return filepath.Join(archiveDir, fileName)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a unique output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {original}  - Input file name without extension
//   - original: The input file path.
//   - ext: The extension to enforce, including the dot (e.g. ".json").
//
// EXAMPLE:
//   format: "{original}_{uuid}"
//   output: "cart_a1b2c3d4-e5f6-7890-abcd-ef1234567890.json"
func (fm *FileManager) GenerateOutputFileName(format, original, ext string) string {
	now := fm.now()
	base := filepath.Base(original)

	replacer := strings.NewReplacer(
		"{uuid}", uuid.NewString(),
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{original}", strings.TrimSuffix(base, filepath.Ext(base)),
	)
	result := replacer.Replace(format)

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// ErrorLogEntry represents a single error log entry.
type ErrorLogEntry struct {
	Timestamp    time.Time
	FileName     string
	ErrorType    string
	ErrorMessage string

	// Row is the line position, or -1 when the error is not row-specific.
	Row int

	// Column is the cell position, or -1 when the error is not cell-specific.
	Column int
}

// WriteErrorLog writes error entries to a log file in the output directory.
//
// RETURNS:
//   - The path to the error log file ("" when there is nothing to write).
//   - An error if writing fails.
func (fm *FileManager) WriteErrorLog(entries []ErrorLogEntry) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	now := fm.now()
	logPath := filepath.Join(fm.OutputDir, fmt.Sprintf("error_log_%s_%s.txt",
		now.Format("20060102_150405"), uuid.NewString()[:8]))

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Cart Parser - Error Log\n"+
		"Generated: %s\n"+
		"Total Errors: %d\n"+
		"================================================================================\n\n",
		now.Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Error #%d\n"+
			"  Timestamp:      %s\n"+
			"  File:           %s\n"+
			"  Error Type:     %s\n"+
			"  Message:        %s\n",
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.FileName,
			entry.ErrorType,
			entry.ErrorMessage)

		if entry.Row >= 0 {
			fmt.Fprintf(writer, "  Row:            %d\n", entry.Row)
		}
		if entry.Column >= 0 {
			fmt.Fprintf(writer, "  Column:         %d\n", entry.Column)
		}

		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Error Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a processing run.
type ProcessingSummary struct {
	StartTime        time.Time
	EndTime          time.Time
	TotalFiles       int
	SuccessfulFiles  int
	FailedFiles      int
	TotalLineItems   int
	GrandTotal       float64
	ValidationErrors int
	ProcessedFiles   []ProcessedFileInfo
	FailedFilesList  []FailedFileInfo
}

// ProcessedFileInfo contains information about a successfully processed cart.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	LineItems   int
	Total       float64
	ProcessTime time.Duration
}

// FailedFileInfo contains information about a failed cart.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// WriteSummaryLog writes a processing summary to the output directory.
func (fm *FileManager) WriteSummaryLog(summary ProcessingSummary) (string, error) {
	summaryPath := filepath.Join(fm.OutputDir,
		fmt.Sprintf("processing_summary_%s.txt", fm.now().Format("20060102_150405")))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	if err := WriteSummary(file, summary); err != nil {
		return "", err
	}

	return summaryPath, nil
}

// WriteSummary renders summary as text to w.
func WriteSummary(w io.Writer, summary ProcessingSummary) error {
	writer := bufio.NewWriter(w)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "Cart Parser - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Total Files:        %d\n"+
		"  Successful:         %d\n"+
		"  Failed:             %d\n"+
		"  Total Line Items:   %d\n"+
		"  Grand Total:        %.2f\n"+
		"  Validation Errors:  %d\n\n",
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.TotalFiles,
		summary.SuccessfulFiles,
		summary.FailedFiles,
		summary.TotalLineItems,
		summary.GrandTotal,
		summary.ValidationErrors)

	if len(summary.ProcessedFiles) > 0 {
		writer.WriteString("Successful Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(writer, "  Input:        %s\n", pf.InputFile)
			fmt.Fprintf(writer, "  Output:       %s\n", pf.OutputFile)
			fmt.Fprintf(writer, "  Line Items:   %d\n", pf.LineItems)
			fmt.Fprintf(writer, "  Total:        %.2f\n", pf.Total)
			fmt.Fprintf(writer, "  Process Time: %s\n\n", pf.ProcessTime.String())
		}
	}

	if len(summary.FailedFilesList) > 0 {
		writer.WriteString("Failed Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(writer, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(writer, "  Error: %s\n\n", ff.ErrorMessage)
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush summary: %w", err)
	}
	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

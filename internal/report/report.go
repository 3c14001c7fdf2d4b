// =============================================================================
// Cart Parser - Report Module
// =============================================================================
//
// This module renders a parsed cart in one of the supported output formats.
//
// SUPPORTED FORMATS:
//   json - indented JSON object with "items" and "total"
//   yaml - YAML document with the same shape as json
//   xml  - <cart> document produced by the xmlwriter module
//   csv  - one row per line item with an id,name,price,quantity header
//   xlsx - workbook with one row per item and a closing total row
//
// =============================================================================

package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/cart-parser/internal/types"
	"github.com/ginjaninja78/cart-parser/internal/xmlwriter"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatXML, FormatCSV, FormatXLSX}
}

// ParseFormat converts a format name (case-insensitive) into a Format.
// "yml" is accepted as an alias for yaml.
func ParseFormat(name string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "yml" {
		return FormatYAML, nil
	}
	for _, f := range Formats() {
		if string(f) == normalized {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Extension returns the file extension (with leading dot) for the format.
func (f Format) Extension() string {
	return "." + string(f)
}

// =============================================================================
// WRITERS
// =============================================================================

// Write renders result to w in the requested format.
func Write(w io.Writer, result *types.ParseResult, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	case FormatXML:
		return xmlwriter.Write(w, result, xmlwriter.DefaultGenerateOptions())
	case FormatCSV:
		return writeCSV(w, result)
	case FormatXLSX:
		return writeXLSX(w, result)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

func writeJSON(w io.Writer, result *types.ParseResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, result *types.ParseResult) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return encoder.Close()
}

func writeCSV(w io.Writer, result *types.ParseResult) error {
	csvWriter := csv.NewWriter(w)
	encoder := csvutil.NewEncoder(csvWriter)

	if len(result.Items) == 0 {
		if err := encoder.EncodeHeader(types.LineItem{}); err != nil {
			return fmt.Errorf("failed to encode csv header: %w", err)
		}
	} else if err := encoder.Encode(result.Items); err != nil {
		return fmt.Errorf("failed to encode csv: %w", err)
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

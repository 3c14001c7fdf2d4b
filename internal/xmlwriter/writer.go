// =============================================================================
// Cart Parser - XML Writer Module
// =============================================================================
//
// This module renders a parsed cart as an XML document.
//
// XML STRUCTURE:
//   <cart>                                   <!-- Root element -->
//     <item n="1" id="3e6def17-...">         <!-- One element per line item -->
//       <name>Mollis consequat</name>
//       <price>9</price>
//       <quantity>2</quantity>
//     </item>
//     <item n="2" id="90cd22aa-...">
//       ...
//     </item>
//     <total>348.32</total>
//   </cart>
//
// Numbers are written in their shortest exact decimal form.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// RootElement is the name of the root element.
	// Default: "cart"
	RootElement string

	// ItemElement is the name of each line item element.
	// Default: "item"
	ItemElement string

	// ItemIndexAttribute is the attribute holding the 1-based item index.
	// Default: "n"
	ItemIndexAttribute string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		RootElement:           "cart",
		ItemElement:           "item",
		ItemIndexAttribute:    "n",
	}
}

// =============================================================================
// XML DOCUMENT STRUCTURE
// =============================================================================

type xmlCart struct {
	XMLName xml.Name
	Items   []xmlItem
	Total   string `xml:"total"`
}

type xmlItem struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Name     string     `xml:"name"`
	Price    string     `xml:"price"`
	Quantity string     `xml:"quantity"`
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate renders result as XML with the default options.
func Generate(result *types.ParseResult) ([]byte, error) {
	return GenerateWithOptions(result, DefaultGenerateOptions())
}

// GenerateWithOptions renders result as XML.
func GenerateWithOptions(result *types.ParseResult, options GenerateOptions) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Write(&buffer, result, options); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Write renders result as XML to w.
func Write(w io.Writer, result *types.ParseResult, options GenerateOptions) error {
	doc := buildDocument(result, options)

	if options.IncludeXMLDeclaration {
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return fmt.Errorf("failed to write XML declaration: %w", err)
		}
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", options.Indent)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode XML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode XML: %w", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// buildDocument maps the parse result onto the XML structure.
func buildDocument(result *types.ParseResult, options GenerateOptions) xmlCart {
	doc := xmlCart{
		XMLName: xml.Name{Local: options.RootElement},
		Items:   make([]xmlItem, len(result.Items)),
		Total:   formatNumber(result.Total),
	}

	for i, item := range result.Items {
		attrs := []xml.Attr{}
		if options.ItemIndexAttribute != "" {
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: options.ItemIndexAttribute}, Value: strconv.Itoa(i + 1)})
		}
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "id"}, Value: item.ID})

		doc.Items[i] = xmlItem{
			XMLName:  xml.Name{Local: options.ItemElement},
			Attrs:    attrs,
			Name:     item.Name,
			Price:    formatNumber(item.Price),
			Quantity: formatNumber(item.Quantity),
		}
	}

	return doc
}

// formatNumber writes v in its shortest exact decimal form.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

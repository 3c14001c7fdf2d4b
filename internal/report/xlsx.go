package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

// xlsxSheet is the worksheet the report is written to.
const xlsxSheet = "Cart"

// xlsxHeader is the first row of the worksheet.
var xlsxHeader = []interface{}{"ID", "Product name", "Price", "Quantity", "Subtotal"}

// writeXLSX writes one row per item followed by a total row.
func writeXLSX(w io.Writer, result *types.ParseResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := setRow(f, 1, xlsxHeader); err != nil {
		return err
	}

	for i, item := range result.Items {
		row := []interface{}{item.ID, item.Name, item.Price, item.Quantity, item.Subtotal()}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	totalRow := []interface{}{"", "Total", nil, nil, result.Total}
	if err := setRow(f, len(result.Items)+2, totalRow); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// setRow writes values starting at column A of the given 1-based row.
func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

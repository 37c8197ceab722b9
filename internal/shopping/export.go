package shopping

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the media type of Export's output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheetName = "Sheet1"

// Export writes the list as a spreadsheet with one row per item.
func Export(w io.Writer, items []Item) error {
	f := excelize.NewFile()
	defer f.Close()

	headings := []string{"Item", "Amount", "Category", "Purchased", "Meals"}
	for i, h := range headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write heading %s: %w", h, err)
		}
	}

	for i, it := range items {
		row := i + 2
		values := []any{it.Item, it.Amount, it.Category, it.Purchased, strings.Join(it.MealIDs, ", ")}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

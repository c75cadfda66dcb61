// Package export renders persisted quotation batches as Excel workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/solarline/quotation-service/internal/quotation"
)

var headerRow = []any{
	"Quotation", "Category", "Brand", "Model", "Specifications",
	"Warranty (years)", "Quantity", "Unit Rate", "Amount", "Profit",
}

// BatchXLSX renders a batch as a single-sheet workbook: one header row,
// one row per line item, and a totals row per quotation.
func BatchXLSX(batch quotation.Batch) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Quotations"
	f.SetSheetName(f.GetSheetName(0), sheet)

	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, q := range batch.Quotations {
		for _, line := range q.Lines {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, err
			}
			values := []any{
				q.ID,
				line.Category.Label(),
				line.Brand,
				line.Model,
				line.Specifications,
				line.WarrantyYears,
				line.Quantity,
				line.UnitRate.InexactFloat64(),
				line.Amount.InexactFloat64(),
				line.Profit.InexactFloat64(),
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return nil, fmt.Errorf("writing line for %s: %w", q.ID, err)
			}
			row++
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		totals := []any{
			q.ID, "TOTAL", "", "", "", "", "",
			q.TotalCost.InexactFloat64(),
			q.TotalPrice.InexactFloat64(),
			q.TotalProfit.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheet, cell, &totals); err != nil {
			return nil, fmt.Errorf("writing totals for %s: %w", q.ID, err)
		}
		row += 2 // blank row between quotations
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}
